package cli

import (
	"github.com/diggerhq/returns/config"
	"github.com/diggerhq/returns/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "returns",
	Short: "Hands students their graded work from a shared folder",
	Long: `returns is a slack bot. Faculty publish a button for an assignment or
exam with a folder link, and each student who presses it privately gets the
link to the file carrying their identifier.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (json, text)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging (sets log level to debug)")
}

// loadConfig reads the config file and applies the log flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.LevelName = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.LevelName = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Configure(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}
