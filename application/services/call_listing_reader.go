package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/mengeshaster/transcriber-twilio/application/ports/inbound"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/mengeshaster/transcriber-twilio/config"
	"github.com/mengeshaster/transcriber-twilio/domain"
)

type callListingReader struct {
	logger        outbound.LoggerPort
	store         outbound.ArtifactStorePort
	awsResults    outbound.TranscriptionResultPort
	storageConfig *config.StorageConfig
}

func NewCallListingReader(
	logger outbound.LoggerPort,
	store outbound.ArtifactStorePort,
	awsResults outbound.TranscriptionResultPort,
	storageConfig *config.StorageConfig,
) inbound.CallListingPort {
	return &callListingReader{
		logger:        logger,
		store:         store,
		awsResults:    awsResults,
		storageConfig: storageConfig,
	}
}

// List scans the caller's by_caller prefix and left-joins each record with
// both transcription sources. The store lists keys in lexical order, so the
// result is chronological per caller. A missing transcription turns into a
// nil field, never an error.
func (r *callListingReader) List(ctx context.Context, caller string) ([]domain.AugmentedCallDetails, error) {
	keys, err := r.store.List(ctx, r.storageConfig.ContentBucket, domain.ByCallerPrefix(caller))
	if err != nil {
		return nil, fmt.Errorf("list calls for %s: %w", caller, err)
	}

	calls := make([]domain.AugmentedCallDetails, 0, len(keys))
	for _, key := range keys {
		body, err := r.store.Get(ctx, r.storageConfig.ContentBucket, key)
		if err != nil {
			return nil, fmt.Errorf("read call details %s: %w", key, err)
		}

		var details domain.CallDetails
		if err := json.Unmarshal(body, &details); err != nil {
			return nil, fmt.Errorf("unmarshal call details %s: %w", key, err)
		}

		calls = append(calls, r.augment(ctx, details))
	}

	return calls, nil
}

func (r *callListingReader) augment(ctx context.Context, details domain.CallDetails) domain.AugmentedCallDetails {
	return domain.AugmentedCallDetails{
		CallDetails:             details,
		TranscriptionTextTwilio: r.twilioTranscription(ctx, details.RecordingSid),
		TranscriptionTextAws:    r.awsTranscription(ctx, details.RecordingSid),
	}
}

func (r *callListingReader) twilioTranscription(ctx context.Context, recordingSid string) *string {
	body, err := r.store.Get(ctx, r.storageConfig.ContentBucket, domain.TwilioTranscriptionKey(recordingSid))
	if err != nil {
		if !errors.Is(err, outbound.ErrObjectNotFound) {
			r.logger.WarnWithFields("Failed to read twilio transcription", map[string]interface{}{
				"recordingSid": recordingSid,
				"error":        err.Error(),
			})
		}
		return nil
	}

	var record struct {
		TranscriptionText string
	}
	if err := json.Unmarshal(body, &record); err != nil {
		r.logger.WarnWithFields("Malformed twilio transcription record", map[string]interface{}{
			"recordingSid": recordingSid,
			"error":        err.Error(),
		})
		return nil
	}

	return &record.TranscriptionText
}

func (r *callListingReader) awsTranscription(ctx context.Context, recordingSid string) *string {
	text, err := r.awsResults.Read(ctx, recordingSid)
	if err != nil {
		r.logger.WarnWithFields("Failed to read aws transcription", map[string]interface{}{
			"recordingSid": recordingSid,
			"error":        err.Error(),
		})
		return nil
	}
	return text
}
