package github

import (
	"fmt"
	"time"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-pr-attention/internal/models"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	// Control test behavior, keyed by author or "owner/repo#number"
	Viewer       string
	ViewerError  error
	PRsByAuthor  map[string][]models.PullRequestSummary
	SearchErrors map[string]error
	Mergeability map[string]models.MergeabilityInfo
	DetailErrors map[string]error
	Reviews      map[string][]models.Review
	ReviewErrors map[string]error
	CreateErrors map[string]error
	UpdateErrors map[string]error

	// Track method calls
	SearchedAuthors []string
	Created         []models.NewPullRequest
	CreatedRepos    []string
	UpdatedBodies   map[string]string
	UpdateOrder     []string

	nextNumber int
}

// PRKey builds the map key used by MockClient for a PR
func PRKey(repo repository.Repository, number int) string {
	return fmt.Sprintf("%s#%d", models.FullName(repo), number)
}

// GetViewerLogin mocks the GraphQL viewer query
func (m *MockClient) GetViewerLogin() (string, error) {
	return m.Viewer, m.ViewerError
}

// SearchOpenPRs mocks the search API call
func (m *MockClient) SearchOpenPRs(org, author string) ([]models.PullRequestSummary, error) {
	m.SearchedAuthors = append(m.SearchedAuthors, author)
	if err := m.SearchErrors[author]; err != nil {
		return nil, err
	}
	return m.PRsByAuthor[author], nil
}

// GetMergeability mocks the PR detail API call
func (m *MockClient) GetMergeability(repo repository.Repository, number int) (models.MergeabilityInfo, error) {
	key := PRKey(repo, number)
	if err := m.DetailErrors[key]; err != nil {
		return models.MergeabilityInfo{}, err
	}
	return m.Mergeability[key], nil
}

// ListReviews mocks the reviews API call
func (m *MockClient) ListReviews(repo repository.Repository, number int) ([]models.Review, error) {
	key := PRKey(repo, number)
	if err := m.ReviewErrors[key]; err != nil {
		return nil, err
	}
	return m.Reviews[key], nil
}

// CreatePR mocks PR creation, numbering PRs from 1
func (m *MockClient) CreatePR(repo repository.Repository, pr models.NewPullRequest) (models.CreatedPullRequest, error) {
	name := models.FullName(repo)
	if err := m.CreateErrors[name]; err != nil {
		return models.CreatedPullRequest{}, err
	}
	m.nextNumber++
	m.Created = append(m.Created, pr)
	m.CreatedRepos = append(m.CreatedRepos, name)
	return models.CreatedPullRequest{
		Repo:   repo,
		Number: m.nextNumber,
		URL:    fmt.Sprintf("https://github.com/%s/pull/%d", name, m.nextNumber),
	}, nil
}

// UpdatePRBody mocks the PR update API call
func (m *MockClient) UpdatePRBody(repo repository.Repository, number int, body string) error {
	name := models.FullName(repo)
	if err := m.UpdateErrors[name]; err != nil {
		return err
	}
	if m.UpdatedBodies == nil {
		m.UpdatedBodies = make(map[string]string)
	}
	m.UpdatedBodies[name] = body
	m.UpdateOrder = append(m.UpdateOrder, name)
	return nil
}

// Helper functions for creating test data
func TestRepo(owner, name string) repository.Repository {
	return repository.Repository{Host: "github.com", Owner: owner, Name: name}
}

func TestPR(repo repository.Repository, number int, author string) models.PullRequestSummary {
	return models.PullRequestSummary{
		URL:    fmt.Sprintf("https://github.com/%s/pull/%d", models.FullName(repo), number),
		Title:  fmt.Sprintf("Test PR #%d", number),
		Author: author,
		Repo:   repo,
		Number: number,
	}
}

func TestReview(login, state string, at time.Time) models.Review {
	return models.Review{User: models.User{Login: login, Type: "User"}, State: state, SubmittedAt: at}
}

// Error helpers for testing error conditions
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}
