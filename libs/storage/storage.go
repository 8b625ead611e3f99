package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Options struct {
	Provider        Provider
	CredentialsFile string

	GcsBucket   string
	GcsLinkBase string

	S3Bucket     string
	S3LinkExpiry time.Duration

	AzureServiceURL string
	AzureContainer  string
}

// NewLister builds the lister for the configured provider. The returned
// client holds the only storage credential of the process and is safe for
// concurrent use.
func NewLister(ctx context.Context, opts Options) (Lister, error) {
	slog.Info("Initializing storage lister", "provider", opts.Provider)
	switch opts.Provider {
	case ProviderDrive, "":
		return NewDriveLister(ctx, opts.CredentialsFile)
	case ProviderGcs:
		gl, err := NewGcsLister(ctx, opts.GcsBucket, opts.CredentialsFile)
		if err != nil {
			return nil, err
		}
		if opts.GcsLinkBase != "" {
			gl.LinkBase = opts.GcsLinkBase
		}
		return gl, nil
	case ProviderS3:
		return NewS3Lister(ctx, opts.S3Bucket, opts.S3LinkExpiry)
	case ProviderAzure:
		return NewAzureLister(opts.AzureServiceURL, opts.AzureContainer)
	default:
		return nil, fmt.Errorf("unknown storage provider: %v", opts.Provider)
	}
}
