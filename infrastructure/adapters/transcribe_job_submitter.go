package adapters

import (
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/mengeshaster/transcriber-twilio/config"
	"net/url"
	"path"
	"strings"
)

type transcribeJobSubmitter struct {
	transcribeSvc    *transcribeservice.TranscribeService
	storageConfig    *config.StorageConfig
	transcribeConfig *config.TranscribeConfig
}

func NewTranscribeJobSubmitter(
	transcribeSvc *transcribeservice.TranscribeService,
	storageConfig *config.StorageConfig,
	transcribeConfig *config.TranscribeConfig,
) outbound.TranscriptionJobPort {
	return &transcribeJobSubmitter{
		transcribeSvc:    transcribeSvc,
		storageConfig:    storageConfig,
		transcribeConfig: transcribeConfig,
	}
}

// Submit starts an asynchronous transcription job. The job name is the media
// filename without extension, so the result lands in the results bucket
// under "{RecordingSid}.json".
func (t *transcribeJobSubmitter) Submit(ctx context.Context, mediaURI string) outbound.SubmissionResult {
	jobID, mediaFormat, err := deriveJobIdentity(mediaURI)
	if err != nil {
		return outbound.SubmissionResult{Err: err}
	}

	input := &transcribeservice.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobID),
		LanguageCode:         aws.String(t.transcribeConfig.LanguageCode),
		MediaFormat:          aws.String(mediaFormat),
		Media: &transcribeservice.Media{
			MediaFileUri: aws.String(mediaURI),
		},
		OutputBucketName: aws.String(t.storageConfig.ResultsBucket),
	}

	if _, err := t.transcribeSvc.StartTranscriptionJobWithContext(ctx, input); err != nil {
		return outbound.SubmissionResult{JobID: jobID, Err: fmt.Errorf("start transcription job %s: %w", jobID, err)}
	}

	return outbound.SubmissionResult{JobID: jobID}
}

func deriveJobIdentity(mediaURI string) (jobID string, mediaFormat string, err error) {
	parsed, err := url.Parse(mediaURI)
	if err != nil {
		return "", "", fmt.Errorf("parse media uri %q: %w", mediaURI, err)
	}

	filename := path.Base(parsed.Path)
	extension := path.Ext(filename)
	if extension == "" {
		return "", "", fmt.Errorf("media uri %q has no file extension", mediaURI)
	}

	jobID = strings.TrimSuffix(filename, extension)
	mediaFormat = strings.ToLower(strings.TrimPrefix(extension, "."))
	return jobID, mediaFormat, nil
}
