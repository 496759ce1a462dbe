// Package cli wires configuration, clients and services into cobra commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/ryo246912/gh-pr-attention/internal/config"
	"github.com/ryo246912/gh-pr-attention/internal/github"
	"github.com/ryo246912/gh-pr-attention/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewRootCmd builds the command tree with its own viper instance
func NewRootCmd() (*cobra.Command, error) {
	v := config.NewViper()
	var envFile string

	cmd := &cobra.Command{
		Use:   "pr-attention",
		Short: "Find pull requests that need attention and open linked pull requests",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load before reading the environment")
	flags.String("github-token", "", "GitHub token (env GITHUB_TOKEN or GH_TOKEN, falls back to gh auth)")
	flags.String("github-host", "", "GitHub host (env GITHUB_HOST, default github.com)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("log-format", "", "log format: text or json (env LOG_FORMAT)")
	if err := bindFlags(v, flags, map[string]string{
		"github-token": config.KeyGitHubToken,
		"github-host":  config.KeyGitHubHost,
		"log-level":    config.KeyLogLevel,
		"log-format":   config.KeyLogFormat,
	}); err != nil {
		return nil, err
	}

	checkCmd, err := newCheckCmd(v)
	if err != nil {
		return nil, err
	}
	createCmd, err := newCreateCmd(v)
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(checkCmd, createCmd)
	return cmd, nil
}

// bindFlags maps flag names to config keys so a set flag overrides the
// environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	log := logger.NewLogger(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, nil)
	slog.SetDefault(log)
	return log
}

func newClient(cfg *config.Config, log *slog.Logger) (*github.Client, error) {
	return github.NewClient(github.ClientOptions{
		Token:  cfg.GitHubToken,
		Host:   cfg.GitHubHost,
		Logger: log,
	})
}
