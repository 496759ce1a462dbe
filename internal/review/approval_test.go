package review

import (
	"testing"
	"time"

	"github.com/ryo246912/gh-pr-attention/internal/github"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	t1 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	t2 = t1.Add(time.Hour)
	t3 = t2.Add(time.Hour)
)

func TestCountApprovals(t *testing.T) {
	tests := []struct {
		name     string
		reviews  []models.Review
		expected int
	}{
		{
			name:     "no reviews",
			reviews:  nil,
			expected: 0,
		},
		{
			name: "two distinct approvals",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewApproved, t1),
				github.TestReview("bob", models.ReviewApproved, t2),
			},
			expected: 2,
		},
		{
			name: "approval overridden by later change request",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewApproved, t1),
				github.TestReview("alice", models.ReviewChangesRequested, t2),
			},
			expected: 0,
		},
		{
			name: "later review wins regardless of list order",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewChangesRequested, t2),
				github.TestReview("alice", models.ReviewApproved, t1),
			},
			expected: 0,
		},
		{
			name: "re-approval after change request",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewChangesRequested, t1),
				github.TestReview("alice", models.ReviewApproved, t2),
			},
			expected: 1,
		},
		{
			name: "same reviewer approving twice counts once",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewApproved, t1),
				github.TestReview("alice", models.ReviewApproved, t2),
			},
			expected: 1,
		},
		{
			name: "comment after approval replaces it",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewApproved, t1),
				github.TestReview("alice", models.ReviewCommented, t2),
			},
			expected: 0,
		},
		{
			// A approves at T1, B requests changes at T2, A re-approves at T3
			name: "mixed trace across reviewers",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewApproved, t1),
				github.TestReview("bob", models.ReviewChangesRequested, t2),
				github.TestReview("alice", models.ReviewApproved, t3),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountApprovals(tt.reviews))
		})
	}
}

func TestLatestReviews_TieBreak(t *testing.T) {
	tests := []struct {
		name      string
		reviews   []models.Review
		wantState string
	}{
		{
			name: "equal timestamps keep the first review",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewApproved, t1),
				github.TestReview("alice", models.ReviewChangesRequested, t1),
			},
			wantState: models.ReviewApproved,
		},
		{
			name: "missing timestamp never replaces a stored review",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewChangesRequested, t1),
				github.TestReview("alice", models.ReviewApproved, time.Time{}),
			},
			wantState: models.ReviewChangesRequested,
		},
		{
			name: "both timestamps missing keep the first review",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewPending, time.Time{}),
				github.TestReview("alice", models.ReviewApproved, time.Time{}),
			},
			wantState: models.ReviewPending,
		},
		{
			name: "timestamped review replaces one without timestamp",
			reviews: []models.Review{
				github.TestReview("alice", models.ReviewPending, time.Time{}),
				github.TestReview("alice", models.ReviewApproved, t1),
			},
			wantState: models.ReviewApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latest := LatestReviews(tt.reviews)
			assert.Len(t, latest, 1)
			assert.Equal(t, tt.wantState, latest["alice"].State)
		})
	}
}

func TestCountApprovals_NeverExceedsReviewers(t *testing.T) {
	logins := []string{"alice", "bob", "carol"}
	states := []string{models.ReviewApproved, models.ReviewChangesRequested, models.ReviewCommented}

	var reviews []models.Review
	for i := 0; i < 30; i++ {
		login := logins[i%len(logins)]
		state := states[(i/2)%len(states)]
		reviews = append(reviews, github.TestReview(login, state, t1.Add(time.Duration(i%7)*time.Minute)))

		distinct := len(LatestReviews(reviews))
		assert.LessOrEqual(t, CountApprovals(reviews), distinct)
	}
}
