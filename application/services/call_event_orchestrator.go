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

const (
	recordingCallbackPath     = "/record_complete"
	transcriptionCallbackPath = "/twilio_transcription_complete"
)

type callEventOrchestrator struct {
	logger        outbound.LoggerPort
	store         outbound.ArtifactStorePort
	mediaFetcher  outbound.MediaFetcherPort
	transcriber   outbound.TranscriptionJobPort
	results       outbound.TranscriptionResultPort
	callControl   outbound.CallControlPort
	workerPool    outbound.TaskDispatcher
	storageConfig *config.StorageConfig
	twilioConfig  *config.TwilioConfig
}

func NewCallEventOrchestrator(
	logger outbound.LoggerPort,
	store outbound.ArtifactStorePort,
	mediaFetcher outbound.MediaFetcherPort,
	transcriber outbound.TranscriptionJobPort,
	results outbound.TranscriptionResultPort,
	callControl outbound.CallControlPort,
	workerPool outbound.TaskDispatcher,
	storageConfig *config.StorageConfig,
	twilioConfig *config.TwilioConfig,
) inbound.CallEventOrchestratorPort {
	return &callEventOrchestrator{
		logger:        logger,
		store:         store,
		mediaFetcher:  mediaFetcher,
		transcriber:   transcriber,
		results:       results,
		callControl:   callControl,
		workerPool:    workerPool,
		storageConfig: storageConfig,
		twilioConfig:  twilioConfig,
	}
}

func (o *callEventOrchestrator) HandleCallStarted(ctx context.Context, event domain.CallEvent) (string, error) {
	if event.RecordingSid != "" {
		// Legacy inline-transcription flow: the provider re-invokes the
		// inbound endpoint after recording. Nothing left to do but hang up.
		o.logger.InfoWithFields("Recording already captured, hanging up", map[string]interface{}{
			"callSid":      event.CallSid,
			"recordingSid": event.RecordingSid,
		})
		return o.callControl.Hangup()
	}

	body, err := json.Marshal(event.Payload)
	if err != nil {
		return "", fmt.Errorf("marshal call record: %w", err)
	}

	if err := o.store.Put(ctx, o.storageConfig.ContentBucket, domain.CallRecordKey(event.CallSid), body); err != nil {
		return "", fmt.Errorf("store call record: %w", err)
	}

	o.logger.InfoWithFields("Stored call record", map[string]interface{}{
		"callSid": event.CallSid,
		"caller":  event.Caller,
	})

	return o.callControl.RecordPrompt(outbound.RecordPromptParams{
		Greeting:                  o.twilioConfig.Greeting,
		RecordingCallbackPath:     recordingCallbackPath,
		TranscriptionCallbackPath: transcriptionCallbackPath,
	})
}

func (o *callEventOrchestrator) HandleRecordingComplete(ctx context.Context, event domain.RecordingEvent) (string, error) {
	if event.RecordingSid == "" {
		return "", ErrMissingRecordingSid
	}

	body, err := json.Marshal(event.Payload)
	if err != nil {
		return "", fmt.Errorf("marshal recording record: %w", err)
	}

	if err := o.store.Put(ctx, o.storageConfig.ContentBucket, domain.RecordingRecordKey(event.RecordingSid), body); err != nil {
		return "", fmt.Errorf("store recording record: %w", err)
	}

	// The recording record above stays behind even if the media copy below
	// fails. That inconsistency is accepted; there is no rollback.
	blobStored := false
	if event.RecordingURL != "" {
		if err := o.copyAudioBlob(ctx, event); err != nil {
			return "", err
		}
		blobStored = true
	}

	if event.CallSid == "" {
		return "", ErrMissingCallSid
	}

	callRecord, err := o.loadCallRecord(ctx, event.CallSid)
	if err != nil {
		return "", err
	}

	details := o.deriveCallDetails(event, callRecord, blobStored)

	detailsBody, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("marshal call details: %w", err)
	}

	startTime, err := domain.ParseRecordingStartTime(event.RecordingStartTime)
	if err != nil {
		return "", err
	}

	detailsKey := domain.ByCallerKey(details.Caller, startTime)
	if err := o.store.Put(ctx, o.storageConfig.ContentBucket, detailsKey, detailsBody); err != nil {
		return "", fmt.Errorf("store call details: %w", err)
	}

	o.logger.InfoWithFields("Stored call details", map[string]interface{}{
		"recordingSid": event.RecordingSid,
		"key":          detailsKey,
	})

	if blobStored {
		o.submitTranscription(event.RecordingSid)
	}

	return event.RecordingSid, nil
}

func (o *callEventOrchestrator) HandleTranscriptionComplete(ctx context.Context, event domain.TranscriptionEvent) (string, error) {
	if event.TranscriptionSid == "" {
		return "", ErrMissingTranscriptionSid
	}
	if event.RecordingSid == "" {
		return "", ErrMissingRecordingSid
	}

	record := make(domain.Payload, len(event.Payload)+1)
	for key, value := range event.Payload {
		record[key] = value
	}

	if !event.HasInlineText {
		// Best-effort fallback: the secondary provider writes its result
		// under the same recording id, so it may already be readable.
		text, err := o.results.Read(ctx, event.RecordingSid)
		if err != nil {
			o.logger.WarnWithFields("Failed to fetch fallback transcription text", map[string]interface{}{
				"recordingSid": event.RecordingSid,
				"error":        err.Error(),
			})
		} else if text != nil {
			record["TranscriptionText"] = *text
		}
	}

	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal transcription record: %w", err)
	}

	key := domain.TwilioTranscriptionKey(event.RecordingSid)
	if err := o.store.Put(ctx, o.storageConfig.ContentBucket, key, body); err != nil {
		return "", fmt.Errorf("store transcription record: %w", err)
	}

	o.logger.InfoWithFields("Stored transcription record", map[string]interface{}{
		"transcriptionSid": event.TranscriptionSid,
		"recordingSid":     event.RecordingSid,
	})

	return event.RecordingSid, nil
}

func (o *callEventOrchestrator) copyAudioBlob(ctx context.Context, event domain.RecordingEvent) error {
	mediaURL := event.RecordingURL + ".mp3"
	content, err := o.mediaFetcher.Fetch(ctx, mediaURL)
	if err != nil {
		return fmt.Errorf("fetch recording media: %w", err)
	}

	key := domain.AudioBlobKey(event.RecordingSid)
	if err := o.store.Put(ctx, o.storageConfig.ContentBucket, key, content); err != nil {
		return fmt.Errorf("store audio blob: %w", err)
	}

	o.logger.DebugWithFields("Copied audio blob", map[string]interface{}{
		"recordingSid": event.RecordingSid,
		"bytes":        len(content),
	})

	return nil
}

func (o *callEventOrchestrator) loadCallRecord(ctx context.Context, callSid string) (domain.Payload, error) {
	body, err := o.store.Get(ctx, o.storageConfig.ContentBucket, domain.CallRecordKey(callSid))
	if err != nil {
		if errors.Is(err, outbound.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCall, callSid)
		}
		return nil, fmt.Errorf("load call record: %w", err)
	}

	var record domain.Payload
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("unmarshal call record %s: %w", callSid, err)
	}

	return record, nil
}

func (o *callEventOrchestrator) deriveCallDetails(event domain.RecordingEvent, callRecord domain.Payload, blobStored bool) domain.CallDetails {
	details := domain.CallDetails{
		Caller:             callRecord.Get("Caller"),
		RecordingStartTime: event.RecordingStartTime,
		RecordingSid:       event.RecordingSid,
		CallSid:            event.CallSid,
	}
	if event.RecordingURL != "" {
		details.Mp3PathTwilio = event.RecordingURL + ".mp3"
	}
	if blobStored {
		details.Mp3Path = domain.AudioBlobKey(event.RecordingSid)
	}
	return details
}

// submitTranscription hands the job submission to the worker pool and
// returns immediately. A failed submission is logged, never surfaced: the
// recording workflow reports success regardless.
func (o *callEventOrchestrator) submitTranscription(recordingSid string) {
	mediaURI := fmt.Sprintf("s3://%s/%s", o.storageConfig.ContentBucket, domain.AudioBlobKey(recordingSid))

	err := o.workerPool.Submit(func() {
		result := o.transcriber.Submit(context.Background(), mediaURI)
		if !result.Submitted() {
			o.logger.ErrorWithFields(result.Err, "Failed to submit transcription job", map[string]interface{}{
				"mediaUri": mediaURI,
			})
			return
		}
		o.logger.InfoWithFields("Submitted transcription job", map[string]interface{}{
			"jobId":    result.JobID,
			"mediaUri": mediaURI,
		})
	})
	if err != nil {
		o.logger.Error(err, "Failed to dispatch transcription submission")
	}
}
