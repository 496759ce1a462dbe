package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/repository"
	graphql "github.com/cli/shurcooL-graphql"
	"github.com/ryo246912/gh-pr-attention/internal/models"
)

const (
	defaultHost = "github.com"
	apiVersion  = "2022-11-28"
	perPage     = 100
)

// ClientOptions configures a Client. An empty Token lets go-gh fall back to
// the credentials stored by `gh auth login`.
type ClientOptions struct {
	Token     string
	Host      string
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client wraps GitHub API clients
type Client struct {
	rest   *api.RESTClient
	gql    *api.GraphQLClient
	host   string
	logger *slog.Logger
}

func NewClient(opts ClientOptions) (*Client, error) {
	host := opts.Host
	if host == "" {
		host = defaultHost
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	apiOpts := api.ClientOptions{
		AuthToken: opts.Token,
		Host:      host,
		Transport: opts.Transport,
		Headers: map[string]string{
			"Accept":               "application/vnd.github.v3+json",
			"X-GitHub-Api-Version": apiVersion,
		},
	}

	restClient, err := api.NewRESTClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	gqlClient, err := api.NewGraphQLClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &Client{
		rest:   restClient,
		gql:    gqlClient,
		host:   host,
		logger: logger,
	}, nil
}

type searchResult struct {
	Items []struct {
		HTMLURL       string      `json:"html_url"`
		Title         string      `json:"title"`
		Number        int         `json:"number"`
		RepositoryURL string      `json:"repository_url"`
		User          models.User `json:"user"`
	} `json:"items"`
}

// SearchOpenPRs returns the first page of open PRs authored by author in org
func (c *Client) SearchOpenPRs(org, author string) ([]models.PullRequestSummary, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("is:pr is:open org:%s author:%s", org, author))
	q.Set("per_page", fmt.Sprint(perPage))

	var result searchResult
	if err := c.rest.Get("search/issues?"+q.Encode(), &result); err != nil {
		return nil, fmt.Errorf("failed to search PRs for %s: %w", author, err)
	}

	prs := make([]models.PullRequestSummary, 0, len(result.Items))
	for _, item := range result.Items {
		repo, err := c.parseRepositoryURL(item.RepositoryURL)
		if err != nil {
			c.logger.Warn("skipping search result", "url", item.HTMLURL, "error", err)
			continue
		}
		login := item.User.Login
		if login == "" {
			login = author
		}
		prs = append(prs, models.PullRequestSummary{
			URL:    item.HTMLURL,
			Title:  item.Title,
			Author: login,
			Repo:   repo,
			Number: item.Number,
		})
	}
	return prs, nil
}

// parseRepositoryURL takes the owner and name from the last two segments of
// an API repository URL such as https://api.github.com/repos/owner/name.
func (c *Client) parseRepositoryURL(repositoryURL string) (repository.Repository, error) {
	parts := strings.Split(strings.TrimRight(repositoryURL, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return repository.Repository{}, fmt.Errorf("invalid repository URL %q", repositoryURL)
	}
	return repository.Repository{
		Host:  c.host,
		Owner: parts[len(parts)-2],
		Name:  parts[len(parts)-1],
	}, nil
}

// GetMergeability fetches mergeable and mergeable_state for a PR
func (c *Client) GetMergeability(repo repository.Repository, number int) (models.MergeabilityInfo, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d", repo.Owner, repo.Name, number)
	var info models.MergeabilityInfo
	if err := c.rest.Get(path, &info); err != nil {
		return models.MergeabilityInfo{}, fmt.Errorf("failed to fetch PR details for #%d in %s: %w", number, models.FullName(repo), err)
	}
	return info, nil
}

// ListReviews fetches the first page of reviews for a PR
func (c *Client) ListReviews(repo repository.Repository, number int) ([]models.Review, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d/reviews?per_page=%d", repo.Owner, repo.Name, number, perPage)
	var reviews []models.Review
	if err := c.rest.Get(path, &reviews); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for PR #%d in %s: %w", number, models.FullName(repo), err)
	}
	return reviews, nil
}

// GetViewerLogin fetches the login of the authenticated user
func (c *Client) GetViewerLogin() (string, error) {
	var q struct {
		Viewer struct {
			Login graphql.String
		}
	}
	if err := c.gql.Query("ViewerLogin", &q, nil); err != nil {
		return "", fmt.Errorf("failed to fetch current user: %w", err)
	}
	return string(q.Viewer.Login), nil
}

// CreatePR opens a pull request
func (c *Client) CreatePR(repo repository.Repository, pr models.NewPullRequest) (models.CreatedPullRequest, error) {
	path := fmt.Sprintf("repos/%s/%s/pulls", repo.Owner, repo.Name)

	jsonBody, err := json.Marshal(pr)
	if err != nil {
		return models.CreatedPullRequest{}, fmt.Errorf("failed to encode request body: %w", err)
	}

	var response struct {
		Number  int    `json:"number"`
		HTMLURL string `json:"html_url"`
	}
	if err := c.rest.Post(path, bytes.NewReader(jsonBody), &response); err != nil {
		return models.CreatedPullRequest{}, newWriteError("create", repo, err)
	}

	c.logger.Info("PR created", "repo", models.FullName(repo), "url", response.HTMLURL)
	return models.CreatedPullRequest{
		Repo:   repo,
		Number: response.Number,
		URL:    response.HTMLURL,
	}, nil
}

// UpdatePRBody replaces the description of a pull request
func (c *Client) UpdatePRBody(repo repository.Repository, number int, body string) error {
	path := fmt.Sprintf("repos/%s/%s/pulls/%d", repo.Owner, repo.Name, number)

	jsonBody, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	var response struct {
		HTMLURL string `json:"html_url"`
	}
	if err := c.rest.Patch(path, bytes.NewReader(jsonBody), &response); err != nil {
		return newWriteError("update", repo, err)
	}

	c.logger.Info("PR updated", "repo", models.FullName(repo), "url", response.HTMLURL)
	return nil
}

// WriteError is returned when GitHub rejects a create or update call
type WriteError struct {
	Op         string
	Repo       string
	StatusCode int
	Status     string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s PR in %s: %s", e.Op, e.Repo, e.Status)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func newWriteError(op string, repo repository.Repository, err error) *WriteError {
	we := &WriteError{Op: op, Repo: models.FullName(repo), Status: err.Error(), Err: err}

	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		we.StatusCode = httpErr.StatusCode
		we.Status = fmt.Sprintf("%d %s", httpErr.StatusCode, http.StatusText(httpErr.StatusCode))
		if httpErr.Message != "" {
			we.Status += ": " + httpErr.Message
		}
	}
	return we
}
