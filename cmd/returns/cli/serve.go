package cli

import (
	"context"
	"fmt"

	"github.com/diggerhq/returns/app"
	"github.com/diggerhq/returns/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the slack endpoint server",
	Long: `Start the HTTP server receiving slack slash commands and button presses.
Secrets are read from SLACK_BOT_TOKEN, SLACK_SIGNING_SECRET and friends.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		creds, err := config.LoadCredentials()
		if err != nil {
			return err
		}

		a, err := app.NewApp(context.Background(), cfg, creds)
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return a.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
