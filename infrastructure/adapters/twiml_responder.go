package adapters

import (
	"fmt"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/twilio/twilio-go/twiml"
)

type twimlResponder struct{}

func NewTwimlResponder() outbound.CallControlPort {
	return twimlResponder{}
}

func (t twimlResponder) RecordPrompt(params outbound.RecordPromptParams) (string, error) {
	verbs := []twiml.Element{
		&twiml.VoiceSay{
			Message: params.Greeting,
		},
		&twiml.VoiceRecord{
			RecordingStatusCallback: params.RecordingCallbackPath,
			Transcribe:              "true",
			TranscribeCallback:      params.TranscriptionCallbackPath,
		},
	}

	document, err := twiml.Voice(verbs)
	if err != nil {
		return "", fmt.Errorf("render record prompt: %w", err)
	}

	return document, nil
}

func (t twimlResponder) Hangup() (string, error) {
	document, err := twiml.Voice([]twiml.Element{&twiml.VoiceHangup{}})
	if err != nil {
		return "", fmt.Errorf("render hangup: %w", err)
	}

	return document, nil
}
