package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	MockListObjectsV2 func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return m.MockListObjectsV2(ctx, params, optFns...)
}

type mockS3Presigner struct{}

func (m *mockS3Presigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{
		URL:    "https://" + aws.ToString(params.Bucket) + ".s3.amazonaws.com/" + aws.ToString(params.Key) + "?X-Amz-Signature=test",
		Method: "GET",
	}, nil
}

func TestS3ListerListFiles(t *testing.T) {
	var gotInput *s3.ListObjectsV2Input
	sl := &S3Lister{
		Bucket:    "graded",
		Presigner: &mockS3Presigner{},
		Client: &mockS3Client{
			MockListObjectsV2: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
				gotInput = params
				return &s3.ListObjectsV2Output{
					Contents: []types.Object{
						{Key: aws.String("a1/")},
						{Key: aws.String("a1/20301234_report.pdf")},
						{Key: aws.String("a1/20309999_report.pdf")},
					},
				}, nil
			},
		},
	}

	records, err := sl.ListFiles(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "graded", aws.ToString(gotInput.Bucket))
	assert.Equal(t, "a1/", aws.ToString(gotInput.Prefix))
	assert.Equal(t, []FileRecord{
		{ID: "a1/20301234_report.pdf", Name: "20301234_report.pdf", Link: "https://graded.s3.amazonaws.com/a1/20301234_report.pdf?X-Amz-Signature=test"},
		{ID: "a1/20309999_report.pdf", Name: "20309999_report.pdf", Link: "https://graded.s3.amazonaws.com/a1/20309999_report.pdf?X-Amz-Signature=test"},
	}, records)
}

func TestS3ListerError(t *testing.T) {
	sl := &S3Lister{
		Bucket:    "graded",
		Presigner: &mockS3Presigner{},
		Client: &mockS3Client{
			MockListObjectsV2: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
				return nil, &types.NoSuchBucket{}
			},
		},
	}

	_, err := sl.ListFiles(context.Background(), "a1")
	require.Error(t, err)
	var noSuchBucket *types.NoSuchBucket
	assert.True(t, errors.As(err, &noSuchBucket))
}
