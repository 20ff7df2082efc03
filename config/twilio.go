package config

import "os"

// TwilioConfig carries the webhook-surface settings. AuthToken is optional:
// when empty, signature validation is disabled (local development).
type TwilioConfig struct {
	AuthToken string
	Greeting  string
	// PublicBaseURL is the externally visible scheme://host used to rebuild
	// the signed webhook URL behind a proxy. Empty means use the request URL.
	PublicBaseURL string
}

const defaultGreeting = "Hello, please leave your message after the tone."

func GetTwilioConfig() (*TwilioConfig, error) {
	greeting := os.Getenv("VOICEMAIL_GREETING")
	if greeting == "" {
		greeting = defaultGreeting
	}

	return &TwilioConfig{
		AuthToken:     os.Getenv("TWILIO_AUTH_TOKEN"),
		Greeting:      greeting,
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
	}, nil
}
