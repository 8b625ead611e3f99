package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diggerhq/returns/libs/folder"
	"github.com/diggerhq/returns/libs/storage"
	"github.com/samber/lo"
)

var ErrTransport = errors.New("storage listing failed")

type OutcomeKind string

const (
	OutcomeFound    OutcomeKind = "found"
	OutcomeNotFound OutcomeKind = "not_found"
)

// Outcome is either Found with the matched record or NotFound.
type Outcome struct {
	Kind   OutcomeKind
	Record *storage.FileRecord
}

func Found(record storage.FileRecord) Outcome {
	return Outcome{Kind: OutcomeFound, Record: &record}
}

func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

func (o Outcome) IsFound() bool {
	return o.Kind == OutcomeFound && o.Record != nil
}

type Resolver struct {
	Lister storage.Lister
}

func New(lister storage.Lister) *Resolver {
	return &Resolver{Lister: lister}
}

// Resolve lists the folder and returns the first record whose name contains
// the requester's identifier. A missing identifier or an unmatched listing
// is NotFound; only a failed listing is an error.
func (r *Resolver) Resolve(ctx context.Context, ref folder.Reference, requesterLabel string) (Outcome, error) {
	records, err := r.Lister.ListFiles(ctx, ref.String())
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	id, ok := ExtractIdentifier(requesterLabel)
	if !ok {
		slog.Debug("no identifier in requester label", "folder", ref, "label", requesterLabel)
		return NotFound(), nil
	}

	record, ok := lo.Find(records, func(rec storage.FileRecord) bool {
		return strings.Contains(rec.Name, string(id))
	})
	if !ok {
		slog.Debug("no record matches identifier", "folder", ref, "identifier", id, "listed", len(records))
		return NotFound(), nil
	}

	slog.Debug("record matched", "folder", ref, "identifier", id, "recordId", record.ID)
	return Found(record), nil
}
