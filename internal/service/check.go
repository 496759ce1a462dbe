package service

import (
	"fmt"
	"log/slog"

	"github.com/ryo246912/gh-pr-attention/internal/github"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/review"
)

// SelfAlias in the user list stands for the authenticated user
const SelfAlias = "@me"

// SweepError reports reads that failed and were skipped during a check
type SweepError struct {
	Errs []error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("%d read(s) failed and were skipped, first: %v", len(e.Errs), e.Errs[0])
}

func (e *SweepError) Unwrap() []error {
	return e.Errs
}

// CheckService finds the open PRs that need attention
type CheckService struct {
	reader github.PullRequestReader
	viewer github.ViewerResolver
	org    string
	logger *slog.Logger
}

// NewCheckService creates a new service instance
func NewCheckService(reader github.PullRequestReader, viewer github.ViewerResolver, org string, logger *slog.Logger) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{
		reader: reader,
		viewer: viewer,
		org:    org,
		logger: logger,
	}
}

// Run checks every user's open PRs one at a time. A failed read skips that
// user or PR and the sweep continues; the skipped reads come back as a
// *SweepError alongside the entries that were found.
func (s *CheckService) Run(users []string) ([]models.AttentionEntry, error) {
	s.logger.Info("checking open PRs", "org", s.org, "users", len(users))

	var entries []models.AttentionEntry
	var errs []error

	for _, user := range users {
		author, err := s.resolveUser(user)
		if err != nil {
			s.logger.Error("failed to resolve user", "user", user, "error", err)
			errs = append(errs, err)
			continue
		}

		s.logger.Info("checking PRs", "user", author)
		prs, err := s.reader.SearchOpenPRs(s.org, author)
		if err != nil {
			s.logger.Error("failed to fetch PRs", "user", author, "error", err)
			errs = append(errs, err)
			continue
		}

		for _, pr := range prs {
			entry, flagged, err := s.evaluate(pr)
			if err != nil {
				s.logger.Error("skipping PR", "repo", models.FullName(pr.Repo), "pr", pr.Number, "error", err)
				errs = append(errs, err)
				continue
			}
			if flagged {
				entries = append(entries, entry)
			}
		}
	}

	if len(errs) > 0 {
		return entries, &SweepError{Errs: errs}
	}
	return entries, nil
}

func (s *CheckService) resolveUser(user string) (string, error) {
	if user != SelfAlias {
		return user, nil
	}
	login, err := s.viewer.GetViewerLogin()
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", SelfAlias, err)
	}
	return login, nil
}

func (s *CheckService) evaluate(pr models.PullRequestSummary) (models.AttentionEntry, bool, error) {
	info, err := s.reader.GetMergeability(pr.Repo, pr.Number)
	if err != nil {
		return models.AttentionEntry{}, false, err
	}

	reviews, err := s.reader.ListReviews(pr.Repo, pr.Number)
	if err != nil {
		return models.AttentionEntry{}, false, err
	}

	entry, flagged := review.Evaluate(pr, info, reviews)
	s.logger.Debug("evaluated PR",
		"repo", entry.Repo,
		"pr", pr.Number,
		"approvals", entry.Approvals,
		"mergeable_state", info.MergeableState,
		"flagged", flagged,
	)
	return entry, flagged, nil
}
