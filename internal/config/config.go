// Package config resolves settings from a .env file, the environment and
// command-line flags into an explicit Config value.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys double as environment variable names and viper keys.
const (
	KeyGitHubToken     = "GITHUB_TOKEN"
	KeyGitHubHost      = "GITHUB_HOST"
	KeyOrg             = "GITHUB_ORG"
	KeyUsers           = "PR_CHECK_USERS"
	KeySlackWebhookURL = "SLACK_WEBHOOK_URL"
	KeyTeamsWebhookURL = "TEAMS_WEBHOOK_URL"
	KeyOwner           = "PR_OWNER"
	KeyRepos           = "PR_REPOS"
	KeyHeadBranch      = "PR_HEAD_BRANCH"
	KeyBaseBranch      = "PR_BASE_BRANCH"
	KeyTitle           = "PR_TITLE"
	KeyDescription     = "PR_DESCRIPTION"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
)

// DefaultEnvFile is loaded when no --env-file is given
const DefaultEnvFile = ".env"

// Config holds the application's configuration values.
type Config struct {
	GitHubToken string
	GitHubHost  string

	Org   string
	Users []string

	SlackWebhookURL string
	TeamsWebhookURL string

	Owner       string
	Repos       []string
	HeadBranch  string
	BaseBranch  string
	Title       string
	Description string

	LogLevel  string
	LogFormat string
}

// LoadEnvFile copies a .env file into the process environment. Variables that
// are already set win. A missing file is only an error when required, which
// is the case for a path the user named explicitly.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		slog.Debug("env file not found, using environment variables", "path", path)
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// NewViper returns a viper instance reading the environment with defaults set
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(KeyGitHubHost, "github.com")
	v.SetDefault(KeyBaseBranch, "master")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	// gh itself exports GH_TOKEN
	_ = v.BindEnv(KeyGitHubToken, KeyGitHubToken, "GH_TOKEN")
	return v
}

// Load reads every key from v
func Load(v *viper.Viper) *Config {
	owner := v.GetString(KeyOwner)
	if owner == "" {
		owner = v.GetString(KeyOrg)
	}

	return &Config{
		GitHubToken:     v.GetString(KeyGitHubToken),
		GitHubHost:      v.GetString(KeyGitHubHost),
		Org:             v.GetString(KeyOrg),
		Users:           SplitList(v.GetString(KeyUsers)),
		SlackWebhookURL: v.GetString(KeySlackWebhookURL),
		TeamsWebhookURL: v.GetString(KeyTeamsWebhookURL),
		Owner:           owner,
		Repos:           SplitList(v.GetString(KeyRepos)),
		HeadBranch:      v.GetString(KeyHeadBranch),
		BaseBranch:      v.GetString(KeyBaseBranch),
		Title:           v.GetString(KeyTitle),
		Description:     v.GetString(KeyDescription),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:       strings.ToLower(v.GetString(KeyLogFormat)),
	}
}

// SplitList splits a comma-separated value, trimming spaces and dropping
// empty items.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func missing(keys ...string) error {
	return fmt.Errorf("missing required configuration: %s", strings.Join(keys, ", "))
}

// ValidateCheck checks the settings the check command needs
func (c *Config) ValidateCheck() error {
	var keys []string
	if c.Org == "" {
		keys = append(keys, KeyOrg)
	}
	if len(c.Users) == 0 {
		keys = append(keys, KeyUsers)
	}
	if len(keys) > 0 {
		return missing(keys...)
	}
	return nil
}

// ValidateCreate checks the settings the create command needs
func (c *Config) ValidateCreate() error {
	var keys []string
	if c.Owner == "" {
		keys = append(keys, KeyOwner)
	}
	if len(c.Repos) == 0 {
		keys = append(keys, KeyRepos)
	}
	if c.HeadBranch == "" {
		keys = append(keys, KeyHeadBranch)
	}
	if c.BaseBranch == "" {
		keys = append(keys, KeyBaseBranch)
	}
	if c.Title == "" {
		keys = append(keys, KeyTitle)
	}
	if len(keys) > 0 {
		return missing(keys...)
	}
	return nil
}

// Repositories resolves the configured repository list. Bare names belong to
// Owner; "owner/name" entries are used as given.
func (c *Config) Repositories() ([]repository.Repository, error) {
	repos := make([]repository.Repository, 0, len(c.Repos))
	for _, name := range c.Repos {
		full := name
		if !strings.Contains(name, "/") {
			full = c.Owner + "/" + name
		}
		repo, err := repository.ParseWithHost(full, c.GitHubHost)
		if err != nil {
			return nil, fmt.Errorf("invalid repository %q: %w", name, err)
		}
		repos = append(repos, repo)
	}
	return repos, nil
}
