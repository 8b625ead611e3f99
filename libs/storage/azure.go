package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

type AzureBlobSource interface {
	ListBlobNames(ctx context.Context, container, prefix string) ([]string, error)
}

// AzureLister treats a folder id as a blob prefix inside one container.
type AzureLister struct {
	Source        AzureBlobSource
	ServiceURL    string
	ContainerName string
}

func NewAzureLister(serviceURL, containerName string) (*AzureLister, error) {
	if serviceURL == "" || containerName == "" {
		return nil, fmt.Errorf("azure service url and container must both be set")
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("could not load azure credentials: %w", err)
	}
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create azure blob client: %w", err)
	}
	return &AzureLister{
		Source:        &azblobSource{client: client},
		ServiceURL:    serviceURL,
		ContainerName: containerName,
	}, nil
}

func (al *AzureLister) ListFiles(ctx context.Context, folderID string) ([]FileRecord, error) {
	prefix := strings.TrimSuffix(folderID, "/") + "/"
	slog.Debug("Listing azure blobs", "container", al.ContainerName, "prefix", prefix)

	names, err := al.Source.ListBlobNames(ctx, al.ContainerName, prefix)
	if err != nil {
		slog.Error("Failed to list azure blobs",
			"container", al.ContainerName,
			"prefix", prefix,
			"error", err)
		return nil, fmt.Errorf("could not list azure blobs under %v: %w", prefix, err)
	}

	records := make([]FileRecord, 0, len(names))
	for _, blobName := range names {
		name := strings.TrimPrefix(blobName, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		link, err := objectLink(al.ServiceURL, al.ContainerName, blobName)
		if err != nil {
			return nil, fmt.Errorf("could not form link for blob %v: %w", blobName, err)
		}
		records = append(records, FileRecord{ID: blobName, Name: name, Link: link})
	}
	return records, nil
}

type azblobSource struct {
	client *azblob.Client
}

// ListBlobNames reads only the first page of the listing.
func (s *azblobSource) ListBlobNames(ctx context.Context, container, prefix string) ([]string, error) {
	pager := s.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{
		Prefix: &prefix,
	})
	if !pager.More() {
		return nil, nil
	}
	page, err := pager.NextPage(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	if page.Segment == nil {
		return names, nil
	}
	for _, item := range page.Segment.BlobItems {
		if item == nil || item.Name == nil {
			continue
		}
		if item.Deleted != nil && *item.Deleted {
			continue
		}
		names = append(names, *item.Name)
	}
	return names, nil
}
