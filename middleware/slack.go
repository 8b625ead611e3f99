package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

// SlackSignatureAuth rejects requests that are not signed with the app's
// signing secret. The body is restored for the handlers.
func SlackSignatureAuth(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if signingSecret == "" {
			slog.Error("Slack signature middleware called but no signing secret configured")
			c.String(http.StatusInternalServerError, "slack signing secret not configured")
			c.Abort()
			return
		}

		verifier, err := slack.NewSecretsVerifier(c.Request.Header, signingSecret)
		if err != nil {
			slog.Warn("Rejected slack request", "error", err)
			c.String(http.StatusUnauthorized, "invalid slack signature headers")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "could not read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		if _, err := verifier.Write(body); err != nil {
			c.String(http.StatusInternalServerError, "could not verify request")
			c.Abort()
			return
		}
		if err := verifier.Ensure(); err != nil {
			slog.Warn("Rejected slack request with bad signature", "error", err)
			c.String(http.StatusUnauthorized, "invalid slack signature")
			c.Abort()
			return
		}
		c.Next()
	}
}
