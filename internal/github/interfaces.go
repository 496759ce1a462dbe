package github

import (
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-pr-attention/internal/models"
)

// PullRequestReader defines the read-only calls used by the check command
type PullRequestReader interface {
	SearchOpenPRs(org, author string) ([]models.PullRequestSummary, error)
	GetMergeability(repo repository.Repository, number int) (models.MergeabilityInfo, error)
	ListReviews(repo repository.Repository, number int) ([]models.Review, error)
}

// PullRequestWriter defines the calls used by the create command
type PullRequestWriter interface {
	CreatePR(repo repository.Repository, pr models.NewPullRequest) (models.CreatedPullRequest, error)
	UpdatePRBody(repo repository.Repository, number int, body string) error
}

// ViewerResolver resolves the authenticated user
type ViewerResolver interface {
	GetViewerLogin() (string, error)
}

// GitHubClient defines the interface for GitHub operations
type GitHubClient interface {
	PullRequestReader
	PullRequestWriter
	ViewerResolver
}

// Ensure Client implements GitHubClient interface
var _ GitHubClient = (*Client)(nil)
