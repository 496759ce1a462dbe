// Package notify formats the attention list for chat webhooks and posts it.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AllClearText is shown when no PR needs attention
const AllClearText = "All PRs are approved and ready to merge!"

// Summary is the plain count line shared by every channel
func Summary(count int) string {
	return fmt.Sprintf("PRs Needing Attention (%d)", count)
}

// Title is the count header shared by every channel
func Title(count int) string {
	return "📋 " + Summary(count)
}

// Encode marshals a payload without HTML escaping so Slack links such as
// <url|View PR> stay readable.
func Encode(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
