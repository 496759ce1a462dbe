package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ryo246912/gh-pr-attention/internal/config"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/service"
	"github.com/ryo246912/gh-pr-attention/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCreateCmd(v *viper.Viper) (*cobra.Command, error) {
	var yes, dryRun bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open the same PR in several repositories and cross-link them",
		Long: `Opens one pull request per repository from the same head branch, then rewrites
every description to list links to all of the pull requests that were opened.

The run stops at the first failed call. Nothing is rolled back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			log := newLogger(cfg)

			if err := cfg.ValidateCreate(); err != nil {
				return err
			}
			repos, err := cfg.Repositories()
			if err != nil {
				return err
			}

			req := service.CreateRequest{
				Repos:       repos,
				Title:       cfg.Title,
				Description: cfg.Description,
				Head:        cfg.HeadBranch,
				Base:        cfg.BaseBranch,
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprint(out, service.NewCreateService(nil, nil, log).Plan(req))
				return nil
			}

			client, err := newClient(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}

			svc := service.NewCreateService(client, &ui.DefaultPrompter{}, log)
			return runCreate(out, svc, req, !yes)
		},
	}

	flags := cmd.Flags()
	flags.String("owner", "", "owner of bare repository names (env PR_OWNER, default GITHUB_ORG)")
	flags.String("repos", "", "comma-separated repositories, name or owner/name (env PR_REPOS)")
	flags.String("head", "", "head branch (env PR_HEAD_BRANCH)")
	flags.String("base", "", "base branch (env PR_BASE_BRANCH, default master)")
	flags.String("title", "", "PR title (env PR_TITLE)")
	flags.String("body", "", "PR description (env PR_DESCRIPTION)")
	flags.BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	flags.BoolVar(&dryRun, "dry-run", false, "print the plan without calling GitHub")
	if err := bindFlags(v, flags, map[string]string{
		"owner": config.KeyOwner,
		"repos": config.KeyRepos,
		"head":  config.KeyHeadBranch,
		"base":  config.KeyBaseBranch,
		"title": config.KeyTitle,
		"body":  config.KeyDescription,
	}); err != nil {
		return nil, err
	}

	return cmd, nil
}

// runCreate opens the PRs and prints the ones that were created, including
// those created before a failure. Declining the prompt is not an error.
func runCreate(out io.Writer, svc *service.CreateService, req service.CreateRequest, confirm bool) error {
	created, err := svc.Run(req, confirm)
	if errors.Is(err, service.ErrCancelled) {
		fmt.Fprintln(out, "PR creation cancelled")
		return nil
	}
	printCreated(out, created)
	return err
}

func printCreated(out io.Writer, created []models.CreatedPullRequest) {
	for _, pr := range created {
		fmt.Fprintf(out, "%s\t%s\n", models.FullName(pr.Repo), pr.URL)
	}
}
