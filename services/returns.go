package services

import (
	"context"
	"time"

	"github.com/diggerhq/returns/libs/folder"
	"github.com/diggerhq/returns/libs/messages"
	"github.com/diggerhq/returns/libs/resolver"
	"github.com/diggerhq/returns/logging"
)

// ReturnRequest is one button press.
type ReturnRequest struct {
	Category       messages.Category
	Link           string
	RequesterID    string
	RequesterLabel string
}

// ReturnResponse is the single private reply for a press. Err is set when
// the press could not be resolved at all (malformed link or failed listing).
type ReturnResponse struct {
	Text    string
	Outcome resolver.Outcome
	Err     error
}

type ReturnService struct {
	Resolver *resolver.Resolver
	// zero means the listing call is not bounded
	Timeout time.Duration
}

func NewReturnService(r *resolver.Resolver, timeout time.Duration) *ReturnService {
	return &ReturnService{Resolver: r, Timeout: timeout}
}

func (s *ReturnService) Handle(ctx context.Context, req ReturnRequest) ReturnResponse {
	log := logging.From(ctx).With(
		"category", req.Category.String(),
		"requester", req.RequesterID,
	)

	ref, err := folder.ParseReference(req.Link)
	if err != nil {
		log.Warn("could not parse folder link", "link", req.Link, "error", err)
		return ReturnResponse{Text: messages.MalformedLinkText(req.Category), Err: err}
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	outcome, err := s.Resolver.Resolve(ctx, ref, req.RequesterLabel)
	if err != nil {
		log.Error("could not resolve record", "folder", ref, "error", err)
		return ReturnResponse{Text: messages.FailureText(req.Category), Err: err}
	}

	log.Info("resolved return", "folder", ref, "outcome", outcome.Kind)
	return ReturnResponse{
		Text:    messages.ForOutcome(req.Category, messages.Mention(req.RequesterID), outcome),
		Outcome: outcome,
	}
}
