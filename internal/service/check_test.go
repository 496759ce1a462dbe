package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ryo246912/gh-pr-attention/internal/github"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t1 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	t2 = t1.Add(time.Hour)
	t3 = t2.Add(time.Hour)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boolPtr(b bool) *bool {
	return &b
}

func clean() models.MergeabilityInfo {
	return models.MergeabilityInfo{Mergeable: boolPtr(true), MergeableState: "clean"}
}

func approvedBy(logins ...string) []models.Review {
	reviews := make([]models.Review, 0, len(logins))
	for _, login := range logins {
		reviews = append(reviews, github.TestReview(login, models.ReviewApproved, t1))
	}
	return reviews
}

func TestCheckService_Run(t *testing.T) {
	api := github.TestRepo("acme", "api")
	web := github.TestRepo("acme", "web")

	ready := github.TestPR(api, 1, "alice")
	underApproved := github.TestPR(api, 2, "alice")
	conflicted := github.TestPR(web, 3, "bob")
	mixedTrace := github.TestPR(web, 4, "bob")

	client := &github.MockClient{
		PRsByAuthor: map[string][]models.PullRequestSummary{
			"alice": {ready, underApproved},
			"bob":   {conflicted, mixedTrace},
		},
		Mergeability: map[string]models.MergeabilityInfo{
			github.PRKey(api, 1): clean(),
			github.PRKey(api, 2): clean(),
			github.PRKey(web, 3): {Mergeable: boolPtr(false), MergeableState: "dirty"},
			github.PRKey(web, 4): {Mergeable: nil, MergeableState: "unknown"},
		},
		Reviews: map[string][]models.Review{
			github.PRKey(api, 1): approvedBy("carol", "dave"),
			github.PRKey(api, 2): approvedBy("carol"),
			github.PRKey(web, 3): approvedBy("carol", "dave"),
			github.PRKey(web, 4): {
				github.TestReview("carol", models.ReviewApproved, t1),
				github.TestReview("dave", models.ReviewChangesRequested, t2),
				github.TestReview("carol", models.ReviewApproved, t3),
			},
		},
	}

	s := NewCheckService(client, client, "acme", discardLogger())
	entries, err := s.Run([]string{"alice", "bob"})
	require.NoError(t, err)

	require.Len(t, entries, 3)

	assert.Equal(t, underApproved.URL, entries[0].URL)
	assert.Equal(t, 1, entries[0].Approvals)
	assert.False(t, entries[0].Blocked)

	assert.Equal(t, conflicted.URL, entries[1].URL)
	assert.Equal(t, 2, entries[1].Approvals)
	assert.True(t, entries[1].Blocked)
	assert.Equal(t, "acme/web", entries[1].Repo)
	assert.Equal(t, "bob", entries[1].Author)

	assert.Equal(t, mixedTrace.URL, entries[2].URL)
	assert.Equal(t, 1, entries[2].Approvals)

	assert.Equal(t, []string{"alice", "bob"}, client.SearchedAuthors)
}

func TestCheckService_Run_ReadFailuresAreIsolated(t *testing.T) {
	api := github.TestRepo("acme", "api")
	detailFails := github.TestPR(api, 1, "alice")
	reviewsFail := github.TestPR(api, 2, "alice")
	healthy := github.TestPR(api, 3, "alice")

	client := &github.MockClient{
		PRsByAuthor: map[string][]models.PullRequestSummary{
			"alice": {detailFails, reviewsFail, healthy},
		},
		SearchErrors: map[string]error{"ghost": github.NewAPIError("search failed")},
		DetailErrors: map[string]error{github.PRKey(api, 1): github.NewAPIError("detail failed")},
		ReviewErrors: map[string]error{github.PRKey(api, 2): github.NewAPIError("reviews failed")},
		Mergeability: map[string]models.MergeabilityInfo{
			github.PRKey(api, 2): clean(),
			github.PRKey(api, 3): clean(),
		},
	}

	s := NewCheckService(client, client, "acme", discardLogger())
	entries, err := s.Run([]string{"ghost", "alice"})

	require.Error(t, err)
	var sweepErr *SweepError
	require.True(t, errors.As(err, &sweepErr))
	assert.Len(t, sweepErr.Errs, 3)
	assert.Contains(t, err.Error(), "3 read(s) failed")

	require.Len(t, entries, 1, "healthy PR is still evaluated")
	assert.Equal(t, healthy.URL, entries[0].URL)
	assert.Equal(t, 0, entries[0].Approvals)
}

func TestCheckService_Run_ResolvesSelf(t *testing.T) {
	tests := []struct {
		name         string
		viewer       string
		viewerError  error
		wantSearched []string
		wantErr      bool
	}{
		{
			name:         "self alias uses viewer login",
			viewer:       "octocat",
			wantSearched: []string{"octocat", "alice"},
		},
		{
			name:         "viewer failure skips only the alias",
			viewerError:  github.NewAPIError("bad credentials"),
			wantSearched: []string{"alice"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &github.MockClient{Viewer: tt.viewer, ViewerError: tt.viewerError}
			s := NewCheckService(client, client, "acme", discardLogger())

			entries, err := s.Run([]string{SelfAlias, "alice"})

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Empty(t, entries)
			assert.Equal(t, tt.wantSearched, client.SearchedAuthors)
		})
	}
}
