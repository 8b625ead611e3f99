package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSigningSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func signSlackRequest(req *http.Request, secret, body string, ts time.Time) {
	timestamp := strconv.FormatInt(ts.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("v0:" + timestamp + ":" + body))
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
}

func newSlackRouter(secret string, gotBody *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/slack", SlackSignatureAuth(secret), func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		*gotBody = string(b)
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestSlackSignatureAuth(t *testing.T) {
	body := "command=%2Freturn-assignments&text=1+https%3A%2F%2Fdrive.example%2Fopen%3Fid%3DX"

	tests := []struct {
		name       string
		sign       func(req *http.Request)
		wantStatus int
	}{
		{
			name:       "valid_signature",
			sign:       func(req *http.Request) { signSlackRequest(req, testSigningSecret, body, time.Now()) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong_secret",
			sign:       func(req *http.Request) { signSlackRequest(req, "other-secret", body, time.Now()) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "stale_timestamp",
			sign:       func(req *http.Request) { signSlackRequest(req, testSigningSecret, body, time.Now().Add(-time.Hour)) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing_headers",
			sign:       func(req *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody string
			r := newSlackRouter(testSigningSecret, &gotBody)

			req := httptest.NewRequest(http.MethodPost, "/slack", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			tt.sign(req)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, body, gotBody)
			}
		})
	}
}

func TestSlackSignatureAuthWithoutSecret(t *testing.T) {
	var gotBody string
	r := newSlackRouter("", &gotBody)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/slack", strings.NewReader("x=1")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhookAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{name: "valid", secret: "s3cret", header: "Bearer s3cret", wantStatus: http.StatusOK},
		{name: "wrong_token", secret: "s3cret", header: "Bearer nope", wantStatus: http.StatusForbidden},
		{name: "no_header", secret: "s3cret", header: "", wantStatus: http.StatusForbidden},
		{name: "not_bearer", secret: "s3cret", header: "Basic s3cret", wantStatus: http.StatusForbidden},
		{name: "not_configured", secret: "", header: "Bearer ", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/_internal/x", WebhookAuth(tt.secret), func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodPost, "/_internal/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
