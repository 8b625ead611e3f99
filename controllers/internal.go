package controllers

import (
	"net/http"

	"github.com/diggerhq/returns/libs/messages"
	"github.com/diggerhq/returns/libs/storage"
	"github.com/diggerhq/returns/logging"
	"github.com/diggerhq/returns/services"
	"github.com/gin-gonic/gin"
)

type ResolveRequest struct {
	Kind           string `json:"kind" binding:"required"`
	Label          string `json:"label" binding:"required"`
	Link           string `json:"link" binding:"required"`
	RequesterID    string `json:"requester_id"`
	RequesterLabel string `json:"requester_label" binding:"required"`
}

type ResolveResponse struct {
	Text    string              `json:"text"`
	Outcome string              `json:"outcome,omitempty"`
	Record  *storage.FileRecord `json:"record,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ResolveInternal runs a press without slack, for operators checking a folder.
func (mc *MainController) ResolveInternal(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.From(c.Request.Context()).Warn("invalid resolve request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := messages.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := mc.Returns.Handle(c.Request.Context(), services.ReturnRequest{
		Category:       messages.Category{Kind: kind, Label: req.Label},
		Link:           req.Link,
		RequesterID:    req.RequesterID,
		RequesterLabel: req.RequesterLabel,
	})

	out := ResolveResponse{Text: resp.Text}
	if resp.Err != nil {
		out.Error = resp.Err.Error()
		c.JSON(http.StatusUnprocessableEntity, out)
		return
	}
	out.Outcome = string(resp.Outcome.Kind)
	out.Record = resp.Outcome.Record
	c.JSON(http.StatusOK, out)
}
