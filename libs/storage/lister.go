package storage

import (
	"context"
	"fmt"
)

// FileRecord is a single file listed from a folder.
type FileRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// Lister returns the live, non-trashed files of a folder in the order the
// backend lists them. Implementations must not cache between calls.
type Lister interface {
	ListFiles(ctx context.Context, folderID string) ([]FileRecord, error)
}

type Provider string

const (
	ProviderDrive Provider = "drive"
	ProviderGcs   Provider = "gcs"
	ProviderS3    Provider = "s3"
	ProviderAzure Provider = "azure"
)

func (p Provider) String() string {
	return string(p)
}

func ParseProvider(value string) (Provider, error) {
	switch Provider(value) {
	case ProviderDrive, ProviderGcs, ProviderS3, ProviderAzure:
		return Provider(value), nil
	default:
		return "", fmt.Errorf("unknown storage provider: %v", value)
	}
}
