package notify

import (
	"fmt"

	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/review"
)

// SlackMessage is a Block Kit incoming webhook payload
type SlackMessage struct {
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock is a single layout block
type SlackBlock struct {
	Type string     `json:"type"`
	Text *SlackText `json:"text,omitempty"`
}

// SlackText is a text object inside a block
type SlackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func divider() SlackBlock {
	return SlackBlock{Type: "divider"}
}

func mrkdwnSection(text string) SlackBlock {
	return SlackBlock{Type: "section", Text: &SlackText{Type: "mrkdwn", Text: text}}
}

// BuildSlackMessage renders the attention list as Slack blocks
func BuildSlackMessage(entries []models.AttentionEntry) SlackMessage {
	blocks := []SlackBlock{
		{
			Type: "header",
			Text: &SlackText{Type: "plain_text", Text: Title(len(entries)), Emoji: true},
		},
		divider(),
	}

	if len(entries) == 0 {
		blocks = append(blocks, mrkdwnSection("✅ *"+AllClearText+"*"))
		return SlackMessage{Blocks: blocks}
	}

	for _, e := range entries {
		text := fmt.Sprintf("%s *%s*\n📁 %s\n👤 %s\n📝 %s\n🔗 <%s|View PR>",
			review.StatusGlyph(e), review.StatusText(e), e.Repo, e.Author, e.Title, e.URL)
		blocks = append(blocks, mrkdwnSection(text), divider())
	}
	return SlackMessage{Blocks: blocks}
}
