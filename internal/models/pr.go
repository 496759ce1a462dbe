package models

import (
	"time"

	"github.com/cli/go-gh/v2/pkg/repository"
)

// Review states returned by the GitHub reviews API
const (
	ReviewApproved         = "APPROVED"
	ReviewChangesRequested = "CHANGES_REQUESTED"
	ReviewCommented        = "COMMENTED"
	ReviewDismissed        = "DISMISSED"
	ReviewPending          = "PENDING"
)

// MergeableStateBlocked is the mergeable_state GitHub reports when branch
// protection prevents merging.
const MergeableStateBlocked = "blocked"

// User represents a GitHub user
type User struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Review represents a PR review
type Review struct {
	User        User      `json:"user"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PullRequestSummary is a PR found by the issue search
type PullRequestSummary struct {
	URL    string
	Title  string
	Author string
	Repo   repository.Repository
	Number int
}

// MergeabilityInfo holds the merge status GitHub computes asynchronously.
// A nil Mergeable means GitHub has not computed it yet.
type MergeabilityInfo struct {
	Mergeable      *bool  `json:"mergeable"`
	MergeableState string `json:"mergeable_state"`
}

// AttentionEntry is a PR that needs a human to look at it
type AttentionEntry struct {
	Repo      string `json:"repo"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Approvals int    `json:"approvals"`
	Blocked   bool   `json:"blocked"`
}

// NewPullRequest is the payload for opening a PR
type NewPullRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Head  string `json:"head"`
	Base  string `json:"base"`
}

// CreatedPullRequest is a PR opened by the create command
type CreatedPullRequest struct {
	Repo   repository.Repository
	Number int
	URL    string
}

// FullName returns "owner/name" for a repository
func FullName(repo repository.Repository) string {
	return repo.Owner + "/" + repo.Name
}
