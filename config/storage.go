package config

import (
	"fmt"
	"os"
)

// StorageConfig resolves bucket names from the application name and
// deployment slot, e.g. "voicemail-dev-content".
type StorageConfig struct {
	ContentBucket string
	ResultsBucket string
}

func GetStorageConfig() (*StorageConfig, error) {
	appName := os.Getenv("APP_NAME")
	if appName == "" {
		return nil, fmt.Errorf("APP_NAME must be set")
	}

	slot := os.Getenv("SLOT")
	if slot == "" {
		slot = "dev"
	}

	return &StorageConfig{
		ContentBucket: fmt.Sprintf("%s-%s-content", appName, slot),
		ResultsBucket: fmt.Sprintf("%s-%s-aws-transcriptions", appName, slot),
	}, nil
}
