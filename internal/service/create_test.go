package service

import (
	"errors"
	"testing"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/ryo246912/gh-pr-attention/internal/github"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(names ...string) CreateRequest {
	repos := make([]repository.Repository, 0, len(names))
	for _, name := range names {
		repos = append(repos, github.TestRepo("acme", name))
	}
	return CreateRequest{
		Repos:       repos,
		Title:       "[script-test] - Cleanup",
		Description: "This PR cleans and standardizes code.",
		Head:        "feature/my-branch",
		Base:        "master",
	}
}

func TestCreateService_Run(t *testing.T) {
	client := &github.MockClient{}
	s := NewCreateService(client, &ui.MockPrompter{}, discardLogger())

	created, err := s.Run(createRequest("test-api", "another-api"), false)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, []string{"acme/test-api", "acme/another-api"}, client.CreatedRepos)
	for _, pr := range client.Created {
		assert.Equal(t, "This PR cleans and standardizes code.", pr.Body)
		assert.Equal(t, "feature/my-branch", pr.Head)
		assert.Equal(t, "master", pr.Base)
	}

	want := "This PR cleans and standardizes code.\n\n" +
		"- Related PR: [test-api](https://github.com/acme/test-api/pull/1)\n" +
		"- Related PR: [another-api](https://github.com/acme/another-api/pull/2)"
	assert.Equal(t, want, client.UpdatedBodies["acme/test-api"])
	assert.Equal(t, want, client.UpdatedBodies["acme/another-api"])
	assert.Equal(t, []string{"acme/test-api", "acme/another-api"}, client.UpdateOrder)
}

func TestCreateService_Run_Failures(t *testing.T) {
	tests := []struct {
		name          string
		createErrors  map[string]error
		updateErrors  map[string]error
		wantCreated   int
		wantUpdated   []string
		errorContains string
	}{
		{
			name:          "create failure aborts before any update",
			createErrors:  map[string]error{"acme/web": github.NewAPIError("422 Unprocessable Entity")},
			wantCreated:   1,
			wantUpdated:   nil,
			errorContains: "failed to create pull requests",
		},
		{
			name:          "update failure keeps earlier updates",
			updateErrors:  map[string]error{"acme/web": github.NewAPIError("403 Forbidden")},
			wantCreated:   3,
			wantUpdated:   []string{"acme/api"},
			errorContains: "failed to update pull requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &github.MockClient{CreateErrors: tt.createErrors, UpdateErrors: tt.updateErrors}
			s := NewCreateService(client, &ui.MockPrompter{}, discardLogger())

			created, err := s.Run(createRequest("api", "web", "worker"), false)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Len(t, created, tt.wantCreated)
			assert.Equal(t, tt.wantUpdated, client.UpdateOrder)
		})
	}
}

func TestCreateService_Run_Confirmation(t *testing.T) {
	tests := []struct {
		name        string
		prompter    *ui.MockPrompter
		wantErr     error
		wantCreated bool
	}{
		{
			name:        "confirmed",
			prompter:    &ui.MockPrompter{Confirmed: true},
			wantCreated: true,
		},
		{
			name:     "declined",
			prompter: &ui.MockPrompter{Confirmed: false},
			wantErr:  ErrCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &github.MockClient{}
			s := NewCreateService(client, tt.prompter, discardLogger())

			_, err := s.Run(createRequest("api"), true)

			assert.True(t, tt.prompter.ConfirmCreateCalled)
			assert.Contains(t, tt.prompter.LastPlan, "acme/api")
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCreated, len(client.Created) > 0)
		})
	}
}

func TestCreateService_Plan(t *testing.T) {
	s := NewCreateService(&github.MockClient{}, &ui.MockPrompter{}, discardLogger())

	plan := s.Plan(createRequest("api", "web"))

	assert.Contains(t, plan, "Title: [script-test] - Cleanup")
	assert.Contains(t, plan, "Branch: feature/my-branch -> master")
	assert.Contains(t, plan, "Repositories (2):\n  - acme/api\n  - acme/web\n")
}

func TestComposeBody(t *testing.T) {
	prs := []models.CreatedPullRequest{
		{Repo: github.TestRepo("acme", "api"), Number: 5, URL: "https://github.com/acme/api/pull/5"},
	}

	assert.Equal(t, "Desc\n\n- Related PR: [api](https://github.com/acme/api/pull/5)", ComposeBody("Desc", prs))
	assert.Equal(t, "", RelatedLinks(nil))
}
