package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diggerhq/returns/config"
	"github.com/diggerhq/returns/libs/storage"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopSlack struct{}

func (noopSlack) GetUserInfoContext(ctx context.Context, user string) (*slack.User, error) {
	return &slack.User{ID: user}, nil
}

func (noopSlack) PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error) {
	return "", nil
}

func testConfig(t *testing.T, internal bool) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("../config/testdata/basic.yaml")
	require.NoError(t, err)
	cfg.Server.EnableInternalEndpoints = internal
	return cfg
}

func newTestApp(t *testing.T, internal bool) *ReturnsApp {
	t.Helper()
	creds := &config.Credentials{
		SlackBotToken:      "xoxb-test",
		SlackSigningSecret: "signing",
		InternalSecret:     "internal",
	}
	lister := &storage.MockLister{Folders: map[string][]storage.FileRecord{
		"F": {{ID: "1", Name: "20301234.pdf", Link: "https://drive.example/file/1"}},
	}}
	a := newApp(testConfig(t, internal), creds, lister, noopSlack{})
	require.NoError(t, a.setup())
	return a
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t, false)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// unsigned slack requests are rejected
	for _, path := range []string{"/slack/commands", "/slack/interactions"} {
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("command=%2Freturn-assignments"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		a.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/_internal/resolve", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalResolveRoute(t *testing.T) {
	a := newTestApp(t, true)
	body := `{"kind":"assignment","label":"1","link":"https://drive.example/open?id=F","requester_id":"U1","requester_label":"Jane 20301234"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/_internal/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/_internal/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer internal")
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://drive.example/file/1")
}

func TestNewAppRequiresSlackCredentials(t *testing.T) {
	_, err := NewApp(context.Background(), testConfig(t, false), &config.Credentials{})
	assert.Error(t, err)
}
