package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/diggerhq/returns/libs/folder"
	"github.com/diggerhq/returns/libs/messages"
	"github.com/diggerhq/returns/logging"
	"github.com/diggerhq/returns/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

// Interaction acks a button press straight away and replies to the presser
// privately once the record has been looked up.
func (mc *MainController) Interaction(c *gin.Context) {
	log := logging.From(c.Request.Context())

	raw := c.Request.FormValue("payload")
	if raw == "" {
		log.Warn("interaction without payload")
		c.String(http.StatusBadRequest, "missing payload")
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(raw), &cb); err != nil {
		log.Warn("could not decode interaction payload", "error", err)
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	if cb.Type != slack.InteractionTypeBlockActions {
		log.Debug("ignoring interaction", "type", cb.Type)
		c.Status(http.StatusOK)
		return
	}

	for _, action := range cb.ActionCallback.BlockActions {
		if action.ActionID != messages.ActionIDFetch {
			continue
		}
		payload, err := messages.DecodeButton(action.Value)
		if err != nil {
			log.Warn("could not decode button value", "error", err, "user", cb.User.ID)
			continue
		}

		p := press{
			payload:   payload,
			userID:    cb.User.ID,
			userName:  cb.User.Name,
			channelID: cb.Channel.ID,
		}
		ctx := context.WithoutCancel(c.Request.Context())
		mc.dispatch(func() { mc.handlePress(ctx, p) })
	}

	c.Status(http.StatusOK)
}

type press struct {
	payload   messages.ButtonPayload
	userID    string
	userName  string
	channelID string
}

func (mc *MainController) handlePress(ctx context.Context, p press) {
	log := logging.From(ctx).With("user", p.userID, "channel", p.channelID)

	resp := mc.Returns.Handle(ctx, services.ReturnRequest{
		Category:       p.payload.Category,
		Link:           p.payload.Link,
		RequesterID:    p.userID,
		RequesterLabel: mc.requesterLabel(ctx, p.userID, p.userName),
	})
	if resp.Err != nil && !errors.Is(resp.Err, folder.ErrMalformedLink) {
		sentry.CaptureException(resp.Err)
	}

	if _, err := mc.Slack.PostEphemeralContext(ctx, p.channelID, p.userID, slack.MsgOptionText(resp.Text, false)); err != nil {
		log.Error("could not post reply", "error", err)
		sentry.CaptureException(err)
		return
	}
	log.Debug("posted reply", "outcome", resp.Outcome.Kind)
}

// requesterLabel is the presser's display name, which is where students put
// their identifier. Falls back to the real name and then the handle.
func (mc *MainController) requesterLabel(ctx context.Context, userID, userName string) string {
	user, err := mc.Slack.GetUserInfoContext(ctx, userID)
	if err != nil {
		slog.Warn("could not look up user, falling back to handle", "user", userID, "error", err)
		return userName
	}
	switch {
	case user.Profile.DisplayName != "":
		return user.Profile.DisplayName
	case user.Profile.RealName != "":
		return user.Profile.RealName
	case user.RealName != "":
		return user.RealName
	case user.Name != "":
		return user.Name
	default:
		return userName
	}
}
