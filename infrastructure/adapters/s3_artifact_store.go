package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"github.com/rs/zerolog/log"
	"io"
)

type s3ArtifactStore struct {
	s3Svc  *s3.S3
	logger outbound.LoggerPort
}

func NewS3ArtifactStore(s3Svc *s3.S3, logger outbound.LoggerPort) outbound.ArtifactStorePort {
	return &s3ArtifactStore{
		s3Svc:  s3Svc,
		logger: logger,
	}
}

func (s *s3ArtifactStore) Put(ctx context.Context, bucket string, key string, body []byte) error {
	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", bucket).
			Str("key", key).
			Msg("Failed to upload object to S3")
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}

	log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Msg("Successfully uploaded object to S3")

	return nil
}

func (s *s3ArtifactStore) Get(ctx context.Context, bucket string, key string) ([]byte, error) {
	getInput := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	out, err := s.s3Svc.GetObjectWithContext(ctx, getInput)
	if err != nil {
		if isNotFound(err) {
			return nil, outbound.ErrObjectNotFound
		}
		log.Error().
			Err(err).
			Str("bucket", bucket).
			Str("key", key).
			Msg("Failed to fetch object from S3")
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}

	defer func() {
		if err := out.Body.Close(); err != nil {
			s.logger.Error(err, "Failed to close S3 object body")
		}
	}()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}

	return body, nil
}

func (s *s3ArtifactStore) List(ctx context.Context, bucket string, prefix string) ([]string, error) {
	var keys []string

	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}

	err := s.s3Svc.ListObjectsV2PagesWithContext(ctx, listInput, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			keys = append(keys, aws.StringValue(object.Key))
		}
		return true
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", bucket).
			Str("prefix", prefix).
			Msg("Failed to list objects in S3")
		return nil, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
	}

	return keys, nil
}

func isNotFound(err error) bool {
	var awsErr awserr.Error
	if !errors.As(err, &awsErr) {
		return false
	}
	switch awsErr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return true
	}
	return false
}
