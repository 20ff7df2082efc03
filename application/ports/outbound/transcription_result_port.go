package outbound

import "context"

// TranscriptionResultPort fetches a completed speech-to-text result by job
// id. A nil text with nil error means the result is not (yet) available,
// which is a valid state, not a failure.
type TranscriptionResultPort interface {
	Read(ctx context.Context, jobID string) (*string, error)
}
