package outbound

import "context"

// SubmissionResult distinguishes a submitted transcription job from a failed
// submission so callers can log the failure without it reaching their own
// control flow.
type SubmissionResult struct {
	JobID string
	Err   error
}

func (r SubmissionResult) Submitted() bool {
	return r.Err == nil
}

// TranscriptionJobPort submits an asynchronous speech-to-text job for a
// stored audio artifact. The contract is best-effort: a submitted job does
// not imply a future result.
type TranscriptionJobPort interface {
	Submit(ctx context.Context, mediaURI string) SubmissionResult
}
