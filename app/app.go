package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diggerhq/returns/config"
	"github.com/diggerhq/returns/controllers"
	"github.com/diggerhq/returns/libs/resolver"
	"github.com/diggerhq/returns/libs/storage"
	"github.com/diggerhq/returns/logging"
	"github.com/diggerhq/returns/middleware"
	"github.com/diggerhq/returns/services"
	"github.com/diggerhq/returns/version"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// ReturnsApp is the HTTP server slack talks to.
type ReturnsApp struct {
	cfg   *config.Config
	creds *config.Credentials

	controller *controllers.MainController
	router     *gin.Engine
	httpServer *http.Server
}

// NewApp wires the storage lister for the configured provider into the
// resolver and the slack controllers.
func NewApp(ctx context.Context, cfg *config.Config, creds *config.Credentials) (*ReturnsApp, error) {
	if err := creds.RequireSlack(); err != nil {
		return nil, err
	}

	lister, err := storage.NewLister(ctx, cfg.StorageOptions(creds.GoogleCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to set up %v storage: %w", cfg.Storage.Provider, err)
	}

	return newApp(cfg, creds, lister, slack.New(creds.SlackBotToken)), nil
}

func newApp(cfg *config.Config, creds *config.Credentials, lister storage.Lister, client controllers.SlackClient) *ReturnsApp {
	svc := services.NewReturnService(resolver.New(lister), cfg.Storage.ResolveTimeout)
	return &ReturnsApp{
		cfg:        cfg,
		creds:      creds,
		controller: controllers.NewMainController(svc, client, cfg.Slack.AssignmentsCommand, cfg.Slack.ScriptsCommand),
	}
}

func (app *ReturnsApp) setup() error {
	if app.creds.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              app.creds.SentryDSN,
			EnableTracing:    app.cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: app.cfg.Sentry.TracesSampleRate,
			Release:          version.Version,
			Debug:            app.cfg.Sentry.Debug,
			Environment:      app.cfg.Sentry.Environment,
		}); err != nil {
			slog.Warn("Sentry initialization failed", "error", err)
		}
	}

	app.router = app.createRouter()
	return nil
}

func (app *ReturnsApp) createRouter() *gin.Engine {
	if app.cfg.Log.Level == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sloggin.New(slog.Default()))
	r.Use(logging.Middleware())

	if app.creds.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{
			Repanic: true,
		}))
	}

	app.setupRoutes(r)
	return r
}

func (app *ReturnsApp) setupRoutes(r *gin.Engine) {
	r.GET("/ping", app.controller.Ping)
	r.GET("/health", app.controller.Health)

	slackGroup := r.Group("/slack")
	slackGroup.Use(middleware.SlackSignatureAuth(app.creds.SlackSigningSecret))
	slackGroup.POST("/commands", app.controller.SlashCommand)
	slackGroup.POST("/interactions", app.controller.Interaction)

	if app.cfg.Server.EnableInternalEndpoints {
		r.POST("/_internal/resolve", middleware.WebhookAuth(app.creds.InternalSecret), app.controller.ResolveInternal)
	}
}

// Serve runs until SIGINT or SIGTERM, then drains requests and pending
// button replies.
func (app *ReturnsApp) Serve() error {
	if err := app.setup(); err != nil {
		return fmt.Errorf("failed to set up application: %w", err)
	}

	slog.Info("Starting returns bot",
		"version", version.Version,
		"commit", version.Meta,
		"port", app.cfg.Server.Port,
		"storage", app.cfg.Storage.Provider)

	g := new(errgroup.Group)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenAddr := fmt.Sprintf(":%d", app.cfg.Server.Port)
	app.httpServer = &http.Server{
		Addr:         listenAddr,
		Handler:      app.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g.Go(func() error {
		defer cancel()
		slog.Info("Server starting", "address", listenAddr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signalCh)

		select {
		case sig := <-signalCh:
			slog.Info("Received signal", "signal", sig)

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()

			slog.Info("Shutting down HTTP server...")
			if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("HTTP server shutdown error", "error", err)
			}
			return nil
		case <-ctx.Done():
			return nil
		}
	})

	err := g.Wait()

	slog.Info("Waiting for pending replies...")
	if !app.controller.WaitTimeout(shutdownTimeout) {
		slog.Warn("Gave up on pending replies", "timeout", shutdownTimeout)
	}
	sentry.Flush(2 * time.Second)

	return err
}
