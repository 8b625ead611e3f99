package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Credentials are the secrets of the process. They are read once at startup
// and passed explicitly to the clients that need them.
type Credentials struct {
	SlackBotToken         string `env:"SLACK_BOT_TOKEN"`
	SlackSigningSecret    string `env:"SLACK_SIGNING_SECRET"`
	InternalSecret        string `env:"RETURNS_INTERNAL_SECRET"`
	GoogleCredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	SentryDSN             string `env:"SENTRY_DSN"`
}

func LoadCredentials() (*Credentials, error) {
	return parseCredentials(env.Options{})
}

func parseCredentials(opts env.Options) (*Credentials, error) {
	var creds Credentials
	if err := env.ParseWithOptions(&creds, opts); err != nil {
		return nil, fmt.Errorf("failed to parse credentials from environment: %w", err)
	}
	return &creds, nil
}

// RequireSlack checks the secrets needed to serve slack requests.
func (c *Credentials) RequireSlack() error {
	if c.SlackBotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}
	if c.SlackSigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is not set")
	}
	return nil
}
