package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PadRight pads str with spaces up to the given display width
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Cell fits str into exactly width display columns, truncating with "..."
func Cell(str string, width int) string {
	return PadRight(runewidth.Truncate(str, width, "..."), width)
}
