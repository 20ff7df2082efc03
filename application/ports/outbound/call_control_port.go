package outbound

// RecordPromptParams configures the greet-and-record instruction returned to
// the telephony provider on an inbound call.
type RecordPromptParams struct {
	Greeting                  string
	RecordingCallbackPath     string
	TranscriptionCallbackPath string
}

// CallControlPort renders the provider's call-control markup.
type CallControlPort interface {
	RecordPrompt(params RecordPromptParams) (string, error)
	Hangup() (string, error)
}
