package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// single listing response, large folders are not paged
const drivePageSize = 1000

type DriveLister struct {
	Service *drive.Service
}

func NewDriveLister(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*DriveLister, error) {
	clientOpts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	if credentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	srv, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not create drive service: %w", err)
	}
	return &DriveLister{Service: srv}, nil
}

func (dl *DriveLister) ListFiles(ctx context.Context, folderID string) ([]FileRecord, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", escapeDriveQuery(folderID))

	slog.Debug("Listing drive folder", "folderId", folderID)
	res, err := dl.Service.Files.List().
		Q(query).
		Fields("files(id,name,webViewLink)").
		PageSize(drivePageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("Failed to list drive folder", "folderId", folderID, "error", err)
		return nil, fmt.Errorf("could not list drive folder %v: %w", folderID, err)
	}

	records := lo.Map(res.Files, func(f *drive.File, _ int) FileRecord {
		return FileRecord{ID: f.Id, Name: f.Name, Link: f.WebViewLink}
	})
	slog.Debug("Listed drive folder", "folderId", folderID, "count", len(records))
	return records, nil
}

func escapeDriveQuery(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}
