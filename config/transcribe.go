package config

import "os"

type TranscribeConfig struct {
	LanguageCode string
}

func GetTranscribeConfig() (*TranscribeConfig, error) {
	languageCode := os.Getenv("TRANSCRIBE_LANGUAGE_CODE")
	if languageCode == "" {
		languageCode = "he-IL"
	}

	return &TranscribeConfig{
		LanguageCode: languageCode,
	}, nil
}
