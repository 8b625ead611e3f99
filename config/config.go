package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/diggerhq/returns/libs/storage"
	"github.com/diggerhq/returns/logging"
	"github.com/spf13/viper"
)

const envPrefix = "RETURNS"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Slack   SlackConfig   `mapstructure:"slack"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
}

type ServerConfig struct {
	Port                    int  `mapstructure:"port"`
	EnableInternalEndpoints bool `mapstructure:"enable_internal_endpoints"`
}

type LogConfig struct {
	LevelName string     `mapstructure:"level"`
	Format    string     `mapstructure:"format"`
	Level     slog.Level `mapstructure:"-"`
}

type StorageConfig struct {
	Provider        string        `mapstructure:"provider"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	ResolveTimeout  time.Duration `mapstructure:"resolve_timeout"`
	Gcs             GcsConfig     `mapstructure:"gcs"`
	S3              S3Config      `mapstructure:"s3"`
	Azure           AzureConfig   `mapstructure:"azure"`
}

type GcsConfig struct {
	Bucket   string `mapstructure:"bucket"`
	LinkBase string `mapstructure:"link_base"`
}

type S3Config struct {
	Bucket     string        `mapstructure:"bucket"`
	LinkExpiry time.Duration `mapstructure:"link_expiry"`
}

type AzureConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Container  string `mapstructure:"container"`
}

type SlackConfig struct {
	AssignmentsCommand string `mapstructure:"assignments_command"`
	ScriptsCommand     string `mapstructure:"scripts_command"`
}

type SentryConfig struct {
	Environment      string  `mapstructure:"environment"`
	TracesSampleRate float64 `mapstructure:"traces_sample_rate"`
	Debug            bool    `mapstructure:"debug"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.enable_internal_endpoints", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)
	v.SetDefault("storage.provider", string(storage.ProviderDrive))
	v.SetDefault("storage.credentials_file", "")
	v.SetDefault("storage.resolve_timeout", "0s")
	v.SetDefault("storage.gcs.bucket", "")
	v.SetDefault("storage.gcs.link_base", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.link_expiry", "168h")
	v.SetDefault("storage.azure.service_url", "")
	v.SetDefault("storage.azure.container", "")
	v.SetDefault("slack.assignments_command", "/return-assignments")
	v.SetDefault("slack.scripts_command", "/return-scripts")
	v.SetDefault("sentry.environment", "production")
	v.SetDefault("sentry.traces_sample_rate", 0.1)
	v.SetDefault("sentry.debug", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the YAML file at path (optional when empty), applies
// RETURNS_* environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %v: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	level, err := logging.ParseLevel(c.Log.LevelName)
	if err != nil {
		return err
	}
	c.Log.Level = level

	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatText {
		return fmt.Errorf("invalid log format: %v (must be json or text)", c.Log.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	provider, err := storage.ParseProvider(c.Storage.Provider)
	if err != nil {
		return fmt.Errorf("storage.provider must be one of drive, gcs, s3, azure: %w", err)
	}
	switch provider {
	case storage.ProviderGcs:
		if c.Storage.Gcs.Bucket == "" {
			return fmt.Errorf("storage.gcs.bucket is required when storage.provider is gcs")
		}
	case storage.ProviderS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when storage.provider is s3")
		}
	case storage.ProviderAzure:
		if c.Storage.Azure.ServiceURL == "" || c.Storage.Azure.Container == "" {
			return fmt.Errorf("storage.azure.service_url and storage.azure.container are required when storage.provider is azure")
		}
	}

	if c.Storage.ResolveTimeout < 0 {
		return fmt.Errorf("storage.resolve_timeout must not be negative")
	}

	for name, command := range map[string]string{
		"slack.assignments_command": c.Slack.AssignmentsCommand,
		"slack.scripts_command":     c.Slack.ScriptsCommand,
	} {
		if !strings.HasPrefix(command, "/") {
			return fmt.Errorf("%v must start with a slash, got %q", name, command)
		}
	}
	if c.Slack.AssignmentsCommand == c.Slack.ScriptsCommand {
		return fmt.Errorf("slack.assignments_command and slack.scripts_command must differ")
	}
	return nil
}

// StorageOptions maps the storage section onto lister options.
func (c *Config) StorageOptions(credentialsFile string) storage.Options {
	if c.Storage.CredentialsFile != "" {
		credentialsFile = c.Storage.CredentialsFile
	}
	return storage.Options{
		Provider:        storage.Provider(c.Storage.Provider),
		CredentialsFile: credentialsFile,
		GcsBucket:       c.Storage.Gcs.Bucket,
		GcsLinkBase:     c.Storage.Gcs.LinkBase,
		S3Bucket:        c.Storage.S3.Bucket,
		S3LinkExpiry:    c.Storage.S3.LinkExpiry,
		AzureServiceURL: c.Storage.Azure.ServiceURL,
		AzureContainer:  c.Storage.Azure.Container,
	}
}
