package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/mengeshaster/transcriber-twilio/config"
)

// transcribeResultDocument is the relevant slice of the AWS Transcribe
// output document.
type transcribeResultDocument struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

type transcribeResultReader struct {
	store         outbound.ArtifactStorePort
	storageConfig *config.StorageConfig
	logger        outbound.LoggerPort
}

func NewTranscribeResultReader(
	store outbound.ArtifactStorePort,
	storageConfig *config.StorageConfig,
	logger outbound.LoggerPort,
) outbound.TranscriptionResultPort {
	return &transcribeResultReader{
		store:         store,
		storageConfig: storageConfig,
		logger:        logger,
	}
}

// Read loads the result document for jobID from the results bucket. An
// absent document is the expected state for "not yet transcribed" and
// "never submitted", so it yields nil without an error.
func (r *transcribeResultReader) Read(ctx context.Context, jobID string) (*string, error) {
	body, err := r.store.Get(ctx, r.storageConfig.ResultsBucket, jobID+".json")
	if err != nil {
		if errors.Is(err, outbound.ErrObjectNotFound) {
			r.logger.InfoWithFields("No transcription result", map[string]interface{}{
				"jobId": jobID,
			})
			return nil, nil
		}
		return nil, fmt.Errorf("read transcription result %s: %w", jobID, err)
	}

	var document transcribeResultDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("unmarshal transcription result %s: %w", jobID, err)
	}

	transcripts := document.Results.Transcripts
	if len(transcripts) == 0 {
		r.logger.WarnWithFields("Transcription result contains no transcripts", map[string]interface{}{
			"jobId": jobID,
		})
		return nil, nil
	}

	if len(transcripts) > 1 {
		r.logger.WarnWithFields("Transcription result contains multiple transcripts, using the first", map[string]interface{}{
			"jobId": jobID,
			"count": len(transcripts),
		})
	}

	return &transcripts[0].Transcript, nil
}
