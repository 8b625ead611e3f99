package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func WebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			slog.Error("Critical - webhook middleware called but RETURNS_INTERNAL_SECRET not configured")
			c.String(http.StatusInternalServerError, "webhook authentication not configured")
			c.Abort()
			return
		}
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.String(http.StatusForbidden, "No Authorization header provided")
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.String(http.StatusForbidden, "invalid authorization format, expected Bearer token")
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.String(http.StatusForbidden, "invalid token")
			c.Abort()
			return
		}
		c.Next()
	}
}
