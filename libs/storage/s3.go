package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultS3LinkExpiry = 7 * 24 * time.Hour

type S3Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Lister treats a folder id as a key prefix and hands out presigned links.
type S3Lister struct {
	Client     S3Client
	Presigner  S3Presigner
	Bucket     string
	LinkExpiry time.Duration
}

func NewS3Lister(ctx context.Context, bucket string, linkExpiry time.Duration) (*S3Lister, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not defined")
	}
	sdkConfig, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load aws config: %w", err)
	}
	client := s3.NewFromConfig(sdkConfig)
	if linkExpiry <= 0 {
		linkExpiry = defaultS3LinkExpiry
	}
	return &S3Lister{
		Client:     client,
		Presigner:  s3.NewPresignClient(client),
		Bucket:     bucket,
		LinkExpiry: linkExpiry,
	}, nil
}

func (sl *S3Lister) ListFiles(ctx context.Context, folderID string) ([]FileRecord, error) {
	prefix := strings.TrimSuffix(folderID, "/") + "/"
	out, err := sl.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(sl.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		slog.Error("Failed to list s3 objects", "bucket", sl.Bucket, "prefix", prefix, "error", err)
		return nil, fmt.Errorf("could not list s3 objects under %v: %w", prefix, err)
	}

	records := make([]FileRecord, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		name := strings.TrimPrefix(key, prefix)
		if name == "" {
			continue
		}
		link, err := sl.presign(ctx, key)
		if err != nil {
			return nil, err
		}
		records = append(records, FileRecord{ID: key, Name: name, Link: link})
	}
	return records, nil
}

func (sl *S3Lister) presign(ctx context.Context, key string) (string, error) {
	expiry := sl.LinkExpiry
	if expiry <= 0 {
		expiry = defaultS3LinkExpiry
	}
	req, err := sl.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(sl.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("could not presign s3 object %v: %w", key, err)
	}
	return req.URL, nil
}
