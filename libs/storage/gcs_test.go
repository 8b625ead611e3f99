package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGcsSource struct {
	MockListObjects func(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error)
}

func (m *mockGcsSource) ListObjects(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error) {
	return m.MockListObjects(ctx, bucket, prefix)
}

func TestGcsListerListFiles(t *testing.T) {
	var gotBucket, gotPrefix string
	gl := &GcsLister{
		Bucket: "graded",
		Source: &mockGcsSource{
			MockListObjects: func(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error) {
				gotBucket, gotPrefix = bucket, prefix
				return []*storage.ObjectAttrs{
					{Name: "cse101-a1/"},
					{Name: "cse101-a1/20301234_report.pdf"},
					{Name: "cse101-a1/nested/20301234_old.pdf"},
					{Name: "cse101-a1/20305678_report.pdf", Deleted: time.Now()},
					{Name: "cse101-a1/20309999_report.pdf"},
				}, nil
			},
		},
	}

	records, err := gl.ListFiles(context.Background(), "cse101-a1")
	require.NoError(t, err)
	assert.Equal(t, "graded", gotBucket)
	assert.Equal(t, "cse101-a1/", gotPrefix)
	assert.Equal(t, []FileRecord{
		{
			ID:   "cse101-a1/20301234_report.pdf",
			Name: "20301234_report.pdf",
			Link: "https://storage.cloud.google.com/graded/cse101-a1/20301234_report.pdf",
		},
		{
			ID:   "cse101-a1/20309999_report.pdf",
			Name: "20309999_report.pdf",
			Link: "https://storage.cloud.google.com/graded/cse101-a1/20309999_report.pdf",
		},
	}, records)
}

func TestGcsListerCustomLinkBase(t *testing.T) {
	gl := &GcsLister{
		Bucket:   "graded",
		LinkBase: "https://files.example.edu",
		Source: &mockGcsSource{
			MockListObjects: func(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error) {
				return []*storage.ObjectAttrs{{Name: "mid/20301234.pdf"}}, nil
			},
		},
	}

	records, err := gl.ListFiles(context.Background(), "mid/")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://files.example.edu/graded/mid/20301234.pdf", records[0].Link)
}

func TestGcsListerError(t *testing.T) {
	gl := &GcsLister{
		Bucket: "graded",
		Source: &mockGcsSource{
			MockListObjects: func(ctx context.Context, bucket, prefix string) ([]*storage.ObjectAttrs, error) {
				return nil, errors.New("permission denied")
			},
		},
	}

	_, err := gl.ListFiles(context.Background(), "mid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}
