package domain

import "net/url"

// Payload holds the raw form fields of a provider webhook. It is persisted
// verbatim so provider fields we do not model still survive in the store.
type Payload map[string]string

func NewPayload(form url.Values) Payload {
	p := make(Payload, len(form))
	for key := range form {
		p[key] = form.Get(key)
	}
	return p
}

func (p Payload) Get(key string) string {
	return p[key]
}

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// CallEvent is the inbound-call webhook, constructed once per request.
type CallEvent struct {
	CallSid      string
	Caller       string
	RecordingSid string
	Payload      Payload
}

func NewCallEvent(form url.Values) CallEvent {
	payload := NewPayload(form)
	return CallEvent{
		CallSid:      payload.Get("CallSid"),
		Caller:       payload.Get("Caller"),
		RecordingSid: payload.Get("RecordingSid"),
		Payload:      payload,
	}
}

// RecordingEvent is the recording-status webhook.
type RecordingEvent struct {
	RecordingSid       string
	CallSid            string
	RecordingURL       string
	RecordingStartTime string
	Payload            Payload
}

func NewRecordingEvent(form url.Values) RecordingEvent {
	payload := NewPayload(form)
	return RecordingEvent{
		RecordingSid:       payload.Get("RecordingSid"),
		CallSid:            payload.Get("CallSid"),
		RecordingURL:       payload.Get("RecordingUrl"),
		RecordingStartTime: payload.Get("RecordingStartTime"),
		Payload:            payload,
	}
}

// TranscriptionEvent is the transcription-status webhook.
type TranscriptionEvent struct {
	TranscriptionSid  string
	RecordingSid      string
	TranscriptionText string
	HasInlineText     bool
	Payload           Payload
}

func NewTranscriptionEvent(form url.Values) TranscriptionEvent {
	payload := NewPayload(form)
	return TranscriptionEvent{
		TranscriptionSid:  payload.Get("TranscriptionSid"),
		RecordingSid:      payload.Get("RecordingSid"),
		TranscriptionText: payload.Get("TranscriptionText"),
		HasInlineText:     payload.Has("TranscriptionText"),
		Payload:           payload,
	}
}

// CallDetails is the derived join record written when a recording completes.
// Field names match the persisted JSON layout exactly.
type CallDetails struct {
	Caller             string
	RecordingStartTime string
	Mp3Path            string
	Mp3PathTwilio      string
	RecordingSid       string
	CallSid            string
}

// AugmentedCallDetails is CallDetails joined at read time with both
// transcription sources. Nil means the transcription is not (yet) available.
type AugmentedCallDetails struct {
	CallDetails
	TranscriptionTextTwilio *string
	TranscriptionTextAws    *string
}
