package services

import "errors"

// Client errors: the provider sent a webhook without a required field. These
// map to HTTP 400 at the surface; the provider may retry on its own.
var (
	ErrMissingRecordingSid     = errors.New("missing RecordingSid")
	ErrMissingCallSid          = errors.New("missing CallSid")
	ErrMissingTranscriptionSid = errors.New("missing TranscriptionSid")
)

// ErrUnknownCall is a data-integrity failure: a recording-complete event
// referenced a CallSid with no stored call record. No placeholder record is
// synthesized.
var ErrUnknownCall = errors.New("no call record for CallSid")

// IsClientError reports whether err should surface as an HTTP 4xx.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingRecordingSid) ||
		errors.Is(err, ErrMissingCallSid) ||
		errors.Is(err, ErrMissingTranscriptionSid)
}
