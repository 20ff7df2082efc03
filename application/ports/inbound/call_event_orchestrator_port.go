package inbound

import (
	"context"
	"github.com/mengeshaster/transcriber-twilio/domain"
)

// CallEventOrchestratorPort handles the three webhook stages of a captured
// call. State moves between stages through the artifact store only; the
// orchestrator keeps nothing in memory between requests.
type CallEventOrchestratorPort interface {
	// HandleCallStarted persists the call record and returns the
	// call-control markup the provider should execute next.
	HandleCallStarted(ctx context.Context, event domain.CallEvent) (string, error)

	// HandleRecordingComplete persists the recording payload and media,
	// joins it with the call record into CallDetails, and best-effort
	// triggers transcription. Returns the RecordingSid acknowledgment.
	HandleRecordingComplete(ctx context.Context, event domain.RecordingEvent) (string, error)

	// HandleTranscriptionComplete persists the transcription payload keyed
	// by recording identity. Returns the RecordingSid acknowledgment.
	HandleTranscriptionComplete(ctx context.Context, event domain.TranscriptionEvent) (string, error)
}
