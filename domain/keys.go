package domain

import (
	"fmt"
	"strings"
	"time"
)

// RecordingStartTimeLayout is the provider's documented timestamp format,
// e.g. "Mon, 01 Jan 2024 10:00:00 +0000".
const RecordingStartTimeLayout = time.RFC1123Z

// byCallerTimeLayout keeps a numeric offset so UTC renders as "+00:00",
// matching the historical key layout.
const byCallerTimeLayout = "2006-01-02T15:04:05-07:00"

// UnknownCaller is the by-caller key segment used when the caller number is
// missing from the webhook payload.
const UnknownCaller = "UNKNOWN"

func CallRecordKey(callSid string) string {
	return fmt.Sprintf("calls/%s.json", callSid)
}

func RecordingRecordKey(recordingSid string) string {
	return fmt.Sprintf("recordings/%s.json", recordingSid)
}

func AudioBlobKey(recordingSid string) string {
	return fmt.Sprintf("recordings/%s.mp3", recordingSid)
}

func TwilioTranscriptionKey(recordingSid string) string {
	return fmt.Sprintf("transcriptions/twilio/%s.json", recordingSid)
}

// CanonicalCaller strips the leading "+" and spaces from a phone number so
// it is usable as a storage-key segment.
func CanonicalCaller(caller string) string {
	canonical := strings.TrimLeft(caller, "+ ")
	if canonical == "" {
		return UnknownCaller
	}
	return canonical
}

// ParseRecordingStartTime parses the provider timestamp with a fixed,
// locale-independent layout.
func ParseRecordingStartTime(value string) (time.Time, error) {
	t, err := time.Parse(RecordingStartTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse recording start time %q: %w", value, err)
	}
	return t, nil
}

// ByCallerKey derives the canonical storage key for a CallDetails record
// from the caller number and the recording start time.
func ByCallerKey(caller string, startTime time.Time) string {
	return fmt.Sprintf("by_caller/%s/%s.json", CanonicalCaller(caller), startTime.Format(byCallerTimeLayout))
}

// ByCallerPrefix is the listing prefix for all calls of a single caller.
func ByCallerPrefix(caller string) string {
	return fmt.Sprintf("by_caller/%s", caller)
}
