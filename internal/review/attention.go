package review

import (
	"fmt"

	"github.com/ryo246912/gh-pr-attention/internal/models"
)

// IsBlocked reports whether GitHub refuses to merge the PR. An unknown
// mergeable value is not treated as blocked.
func IsBlocked(info models.MergeabilityInfo) bool {
	return (info.Mergeable != nil && !*info.Mergeable) || info.MergeableState == models.MergeableStateBlocked
}

// NeedsAttention flags under-approved PRs, and approved PRs that still
// cannot be merged.
func NeedsAttention(approvals int, info models.MergeabilityInfo) bool {
	hasApprovals := approvals >= RequiredApprovals
	return !hasApprovals || (hasApprovals && IsBlocked(info))
}

// Evaluate builds the attention entry for a PR and reports whether it
// belongs in the result set.
func Evaluate(pr models.PullRequestSummary, info models.MergeabilityInfo, reviews []models.Review) (models.AttentionEntry, bool) {
	approvals := CountApprovals(reviews)
	entry := models.AttentionEntry{
		Repo:      models.FullName(pr.Repo),
		Author:    pr.Author,
		Title:     pr.Title,
		URL:       pr.URL,
		Approvals: approvals,
		Blocked:   IsBlocked(info),
	}
	return entry, NeedsAttention(approvals, info)
}

// UnderApproved reports whether the entry lacks the required approvals
func UnderApproved(entry models.AttentionEntry) bool {
	return entry.Approvals < RequiredApprovals
}

// StatusGlyph distinguishes under-approved PRs from blocked ones
func StatusGlyph(entry models.AttentionEntry) string {
	if UnderApproved(entry) {
		return "❌"
	}
	return "⚠️"
}

// StatusText describes why the entry needs attention
func StatusText(entry models.AttentionEntry) string {
	if UnderApproved(entry) {
		return fmt.Sprintf("%d/%d approvals", entry.Approvals, RequiredApprovals)
	}
	return fmt.Sprintf("%d approvals but BLOCKED", entry.Approvals)
}
