package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/samber/lo"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const defaultGcsLinkBase = "https://storage.cloud.google.com"

type GcsObjectSource interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error)
}

// GcsLister treats a folder id as an object prefix inside one bucket.
type GcsLister struct {
	Source   GcsObjectSource
	Bucket   string
	LinkBase string
}

func NewGcsLister(ctx context.Context, bucket string, credentialsFile string) (*GcsLister, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS bucket is not defined")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create gcs client: %w", err)
	}
	return &GcsLister{
		Source:   &gcsClientSource{client: client},
		Bucket:   bucket,
		LinkBase: defaultGcsLinkBase,
	}, nil
}

func (gl *GcsLister) ListFiles(ctx context.Context, folderID string) ([]FileRecord, error) {
	prefix := strings.TrimSuffix(folderID, "/") + "/"
	objects, err := gl.Source.ListObjects(ctx, gl.Bucket, prefix)
	if err != nil {
		slog.Error("Failed to list gcs objects", "bucket", gl.Bucket, "prefix", prefix, "error", err)
		return nil, fmt.Errorf("could not list gcs objects under %v: %w", prefix, err)
	}

	linkBase := gl.LinkBase
	if linkBase == "" {
		linkBase = defaultGcsLinkBase
	}

	records := make([]FileRecord, 0, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Name, prefix)
		// placeholder objects created by the console for "folders"
		if name == "" || strings.Contains(name, "/") || !obj.Deleted.IsZero() {
			continue
		}
		link, err := objectLink(linkBase, gl.Bucket, obj.Name)
		if err != nil {
			return nil, fmt.Errorf("could not form link for object %v: %w", obj.Name, err)
		}
		records = append(records, FileRecord{ID: obj.Name, Name: name, Link: link})
	}
	return records, nil
}

type gcsClientSource struct {
	client *storage.Client
}

func (s *gcsClientSource) ListObjects(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error) {
	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
	var objects []*storage.ObjectAttrs
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		objects = append(objects, attrs)
	}
	return lo.Filter(objects, func(o *storage.ObjectAttrs, _ int) bool {
		// with a delimiter, sub-folders come back as prefix-only entries
		return o.Name != ""
	}), nil
}
