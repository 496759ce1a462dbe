package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ryo246912/gh-pr-attention/internal/config"
	"github.com/ryo246912/gh-pr-attention/internal/notify"
	"github.com/ryo246912/gh-pr-attention/internal/service"
	"github.com/ryo246912/gh-pr-attention/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCheckCmd(v *viper.Viper) (*cobra.Command, error) {
	var (
		noNotify bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report open PRs lacking approvals or blocked from merging",
		Long: `Searches the open pull requests of every configured user in the organization,
flags the ones with fewer than 2 approvals or approved but blocked from merging,
prints them and posts them to the Slack and Teams webhooks that are configured.

Use @me in the user list for the authenticated user.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			log := newLogger(cfg)

			if format != "text" && format != "table" {
				return fmt.Errorf("invalid format %q: must be text or table", format)
			}
			if err := cfg.ValidateCheck(); err != nil {
				return err
			}

			client, err := newClient(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}

			svc := service.NewCheckService(client, client, cfg.Org, log)
			var notifier *notify.Notifier
			if noNotify {
				log.Info("notifications disabled")
			} else {
				notifier = notify.NewNotifier(notify.NewWebhook(nil, log), cfg.SlackWebhookURL, cfg.TeamsWebhookURL, log)
			}
			return runCheck(cmd.OutOrStdout(), svc, notifier, cfg.Users, format)
		},
	}

	flags := cmd.Flags()
	flags.String("org", "", "organization to search (env GITHUB_ORG)")
	flags.String("users", "", "comma-separated PR authors (env PR_CHECK_USERS)")
	flags.String("slack-webhook", "", "Slack incoming webhook URL (env SLACK_WEBHOOK_URL)")
	flags.String("teams-webhook", "", "Teams incoming webhook URL (env TEAMS_WEBHOOK_URL)")
	flags.BoolVar(&noNotify, "no-notify", false, "print the report without posting to webhooks")
	flags.StringVar(&format, "format", "text", "report format: text or table")
	if err := bindFlags(v, flags, map[string]string{
		"org":           config.KeyOrg,
		"users":         config.KeyUsers,
		"slack-webhook": config.KeySlackWebhookURL,
		"teams-webhook": config.KeyTeamsWebhookURL,
	}); err != nil {
		return nil, err
	}

	return cmd, nil
}

// runCheck sweeps, prints the report and notifies. The report and the
// notifications happen even when reads were skipped; a nil notifier sends
// nothing.
func runCheck(out io.Writer, svc *service.CheckService, notifier *notify.Notifier, users []string, format string) error {
	entries, sweepErr := svc.Run(users)

	if format == "table" {
		ui.Table(out, entries)
	} else {
		ui.Report(out, entries)
	}

	var notifyErr error
	if notifier != nil {
		notifyErr = notifier.NotifyAll(entries)
	}

	return errors.Join(sweepErr, notifyErr)
}
