package cli

import (
	"fmt"

	"github.com/diggerhq/returns/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of returns",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "returns version %s\n", version.Version)

		if showFull, _ := cmd.Flags().GetBool("full"); showFull {
			if version.Meta != "" {
				fmt.Fprintf(out, "Git commit: %s\n", version.Meta)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "Build date: %s\n", version.BuildDate)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolP("full", "f", false, "Display full version information")
}
