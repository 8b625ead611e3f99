package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/diggerhq/returns/config"
	"github.com/diggerhq/returns/libs/messages"
	"github.com/diggerhq/returns/libs/resolver"
	"github.com/diggerhq/returns/libs/storage"
	"github.com/diggerhq/returns/services"
	"github.com/spf13/cobra"
)

type resolveOptions struct {
	kind           string
	category       string
	link           string
	requesterID    string
	requesterLabel string
}

var resolveFlags resolveOptions

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Look up a record the way a button press would",
	Long: `Resolve lists the folder behind --link with the configured storage and
prints the reply a student labelled --label would get. Nothing is sent to slack.`,
	Example: `  returns resolve --kind assignment --category 3 \
    --link 'https://drive.google.com/open?id=FOLDER' --label 'Jane 20301234'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		creds, err := config.LoadCredentials()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		lister, err := storage.NewLister(ctx, cfg.StorageOptions(creds.GoogleCredentialsFile))
		if err != nil {
			return err
		}
		return runResolve(ctx, cmd.OutOrStdout(), services.NewReturnService(resolver.New(lister), cfg.Storage.ResolveTimeout), resolveFlags)
	},
}

func runResolve(ctx context.Context, out io.Writer, svc *services.ReturnService, opts resolveOptions) error {
	kind, err := messages.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	resp := svc.Handle(ctx, services.ReturnRequest{
		Category:       messages.Category{Kind: kind, Label: opts.category},
		Link:           opts.link,
		RequesterID:    opts.requesterID,
		RequesterLabel: opts.requesterLabel,
	})
	fmt.Fprintln(out, resp.Text)
	if resp.Err != nil {
		return resp.Err
	}
	if resp.Outcome.IsFound() {
		fmt.Fprintf(out, "record: %s (%s)\n", resp.Outcome.Record.Name, resp.Outcome.Record.ID)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	f := resolveCmd.Flags()
	f.StringVar(&resolveFlags.kind, "kind", string(messages.KindAssignment), "assignment or exam_script")
	f.StringVar(&resolveFlags.category, "category", "", "assignment number or exam type")
	f.StringVar(&resolveFlags.link, "link", "", "folder link")
	f.StringVar(&resolveFlags.requesterLabel, "label", "", "requester display name")
	f.StringVar(&resolveFlags.requesterID, "requester", "UNKNOWN", "requester slack user id used in the mention")
	_ = resolveCmd.MarkFlagRequired("category")
	_ = resolveCmd.MarkFlagRequired("link")
	_ = resolveCmd.MarkFlagRequired("label")
}
