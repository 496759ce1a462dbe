package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-pr-attention/internal/github"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/ui"
)

// ErrCancelled is returned when the user declines the creation plan
var ErrCancelled = errors.New("PR creation cancelled")

// CreateRequest describes the PRs to open, one per repository
type CreateRequest struct {
	Repos       []repository.Repository
	Title       string
	Description string
	Head        string
	Base        string
}

// CreateService opens PRs across repositories and cross-links them
type CreateService struct {
	writer   github.PullRequestWriter
	prompter ui.Prompter
	logger   *slog.Logger
}

// NewCreateService creates a new service instance
func NewCreateService(writer github.PullRequestWriter, prompter ui.Prompter, logger *slog.Logger) *CreateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateService{
		writer:   writer,
		prompter: prompter,
		logger:   logger,
	}
}

// Plan describes what Run would do
func (s *CreateService) Plan(req CreateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Branch: %s -> %s\n", req.Head, req.Base)
	fmt.Fprintf(&b, "Repositories (%d):\n", len(req.Repos))
	for _, repo := range req.Repos {
		fmt.Fprintf(&b, "  - %s\n", models.FullName(repo))
	}
	return b.String()
}

// Run opens every PR, then rewrites each description with links to all of
// them. The first failure in either phase stops the run; nothing already
// created or updated is rolled back. The PRs created so far are always
// returned.
func (s *CreateService) Run(req CreateRequest, confirm bool) ([]models.CreatedPullRequest, error) {
	if confirm {
		ok, err := s.prompter.ConfirmCreate(s.Plan(req))
		if err != nil {
			return nil, fmt.Errorf("failed to confirm PR creation: %w", err)
		}
		if !ok {
			return nil, ErrCancelled
		}
	}

	created := make([]models.CreatedPullRequest, 0, len(req.Repos))
	for _, repo := range req.Repos {
		pr, err := s.writer.CreatePR(repo, models.NewPullRequest{
			Title: req.Title,
			Body:  req.Description,
			Head:  req.Head,
			Base:  req.Base,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create pull requests: %w", err)
		}
		created = append(created, pr)
	}

	body := ComposeBody(req.Description, created)
	for _, pr := range created {
		if err := s.writer.UpdatePRBody(pr.Repo, pr.Number, body); err != nil {
			return created, fmt.Errorf("failed to update pull requests: %w", err)
		}
	}

	s.logger.Info("all PRs created and updated with related links", "count", len(created))
	return created, nil
}

// RelatedLinks renders one markdown link line per created PR
func RelatedLinks(prs []models.CreatedPullRequest) string {
	lines := make([]string, 0, len(prs))
	for _, pr := range prs {
		lines = append(lines, fmt.Sprintf("- Related PR: [%s](%s)", pr.Repo.Name, pr.URL))
	}
	return strings.Join(lines, "\n")
}

// ComposeBody appends the related links to the shared description
func ComposeBody(description string, prs []models.CreatedPullRequest) string {
	return description + "\n\n" + RelatedLinks(prs)
}
