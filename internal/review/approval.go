// Package review decides which pull requests need attention from their
// reviews and merge status.
package review

import (
	"github.com/ryo246912/gh-pr-attention/internal/models"
)

// RequiredApprovals is the number of approvals a PR needs before it is
// considered ready.
const RequiredApprovals = 2

// LatestReviews keeps the most recent review of each reviewer. A stored
// review is only replaced by one with a strictly later timestamp, so equal
// or missing timestamps keep the first review seen.
func LatestReviews(reviews []models.Review) map[string]models.Review {
	latest := make(map[string]models.Review, len(reviews))
	for _, r := range reviews {
		login := r.User.Login
		stored, ok := latest[login]
		if !ok || r.SubmittedAt.After(stored.SubmittedAt) {
			latest[login] = r
		}
	}
	return latest
}

// CountApprovals counts reviewers whose latest review is an approval
func CountApprovals(reviews []models.Review) int {
	approvals := 0
	for _, r := range LatestReviews(reviews) {
		if r.State == models.ReviewApproved {
			approvals++
		}
	}
	return approvals
}
