package controllers

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diggerhq/returns/libs/folder"
	"github.com/diggerhq/returns/libs/messages"
	"github.com/diggerhq/returns/logging"
	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

func ephemeral(text string) slack.Msg {
	return slack.Msg{ResponseType: "ephemeral", Text: text}
}

func (mc *MainController) kindForCommand(command string) (messages.Kind, bool) {
	switch command {
	case mc.AssignmentsCommand:
		return messages.KindAssignment, true
	case mc.ScriptsCommand:
		return messages.KindExamScript, true
	default:
		return "", false
	}
}

// SlashCommand publishes a fetch button for
//
//	/return-assignments <assignment number> <folder link>
//	/return-scripts <exam type> <folder link>
func (mc *MainController) SlashCommand(c *gin.Context) {
	log := logging.From(c.Request.Context())

	cmd, err := slack.SlashCommandParse(c.Request)
	if err != nil {
		log.Warn("could not parse slash command", "error", err)
		c.String(http.StatusBadRequest, "could not parse slash command")
		return
	}
	log = log.With("command", cmd.Command, "user", cmd.UserID, "channel", cmd.ChannelID)

	kind, ok := mc.kindForCommand(cmd.Command)
	if !ok {
		log.Warn("unknown slash command")
		c.JSON(http.StatusOK, ephemeral(fmt.Sprintf("Unknown command %v.", cmd.Command)))
		return
	}

	label, link, ok := splitCommandText(cmd.Text)
	if !ok {
		c.JSON(http.StatusOK, ephemeral(messages.UsageText(cmd.Command, kind)))
		return
	}

	if _, err := folder.ParseReference(link); err != nil {
		log.Info("rejected folder link", "link", link, "error", err)
		c.JSON(http.StatusOK, ephemeral(fmt.Sprintf("Could not determine a folder from %v. %v", link, messages.UsageText(cmd.Command, kind))))
		return
	}

	msg, err := messages.PublishMessage(messages.ButtonPayload{
		Category: messages.Category{Kind: kind, Label: label},
		Link:     link,
	})
	if err != nil {
		log.Error("could not build button message", "error", err)
		c.JSON(http.StatusOK, ephemeral(fmt.Sprintf("Could not publish the button: %v", err)))
		return
	}

	slog.Info("published return button", "command", cmd.Command, "label", label, "channel", cmd.ChannelID)
	c.JSON(http.StatusOK, msg)
}

// splitCommandText takes the last word as the link and everything before it
// as the category label, so exam types may contain spaces.
func splitCommandText(text string) (label string, link string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", "", false
	}
	label = html.UnescapeString(strings.Join(fields[:len(fields)-1], " "))
	return label, unwrapSlackLink(fields[len(fields)-1]), true
}

// slack may send links as <url> or <url|text>, with &, < and > escaped
// as HTML entities inside.
func unwrapSlackLink(value string) string {
	if strings.HasPrefix(value, "<") && strings.HasSuffix(value, ">") {
		value = strings.TrimSuffix(strings.TrimPrefix(value, "<"), ">")
		if i := strings.Index(value, "|"); i >= 0 {
			value = value[:i]
		}
	}
	return html.UnescapeString(value)
}
