package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/notify"
	"github.com/ryo246912/gh-pr-attention/internal/review"
)

var (
	ruleLine     = strings.Repeat("=", 60)
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// reason is the status line printed above each PR
func reason(e models.AttentionEntry) string {
	if review.UnderApproved(e) {
		return errorColor.Sprintf("%s %s", review.StatusGlyph(e), review.StatusText(e))
	}
	// the warning sign renders narrow in most terminals
	return warnColor.Sprintf("%s  %s", review.StatusGlyph(e), review.StatusText(e))
}

// Report prints the attention list in the block layout
func Report(w io.Writer, entries []models.AttentionEntry) {
	fmt.Fprintf(w, "\n%s\n", ruleLine)
	titleColor.Fprintln(w, notify.Title(len(entries)))
	fmt.Fprintln(w, ruleLine)

	if len(entries) == 0 {
		successColor.Fprintf(w, "\n✅ %s\n\n", notify.AllClearText)
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "\n%s\n", reason(e))
		fmt.Fprintf(w, "  📁 %s\n", e.Repo)
		fmt.Fprintf(w, "  👤 %s\n", e.Author)
		fmt.Fprintf(w, "  📝 %s\n", e.Title)
		fmt.Fprintf(w, "  🔗 %s\n", e.URL)
	}
	fmt.Fprintln(w)
}

const (
	repoWidth   = 30
	authorWidth = 15
	titleWidth  = 50
	statusWidth = 26
)

// Table prints one aligned row per entry
func Table(w io.Writer, entries []models.AttentionEntry) {
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		PadRight("REPO", repoWidth),
		PadRight("AUTHOR", authorWidth),
		PadRight("TITLE", titleWidth),
		PadRight("STATUS", statusWidth),
		"URL",
	)
	for _, e := range entries {
		status := review.StatusText(e)
		if e.Blocked && review.UnderApproved(e) {
			status += " (blocked)"
		}
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			Cell(e.Repo, repoWidth),
			Cell(e.Author, authorWidth),
			Cell(e.Title, titleWidth),
			Cell(status, statusWidth),
			e.URL,
		)
	}
	fmt.Fprintf(w, "%d PR(s) need attention\n", len(entries))
}
