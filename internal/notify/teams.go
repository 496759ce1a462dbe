package notify

import (
	"strconv"

	"github.com/ryo246912/gh-pr-attention/internal/models"
	"github.com/ryo246912/gh-pr-attention/internal/review"
)

const (
	teamsColorOK        = "28a745"
	teamsColorAttention = "dc3545"
)

// TeamsMessage is a legacy Office 365 connector MessageCard
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	Summary    string         `json:"summary"`
	ThemeColor string         `json:"themeColor"`
	Title      string         `json:"title"`
	Sections   []TeamsSection `json:"sections"`
}

type TeamsSection struct {
	ActivityTitle    string        `json:"activityTitle"`
	ActivitySubtitle string        `json:"activitySubtitle"`
	Facts            []TeamsFact   `json:"facts,omitempty"`
	PotentialAction  []TeamsAction `json:"potentialAction,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type TeamsAction struct {
	Type    string        `json:"@type"`
	Name    string        `json:"name"`
	Targets []TeamsTarget `json:"targets"`
}

type TeamsTarget struct {
	OS  string `json:"os"`
	URI string `json:"uri"`
}

// BuildTeamsMessage renders the attention list as a MessageCard
func BuildTeamsMessage(entries []models.AttentionEntry) TeamsMessage {
	var sections []TeamsSection
	if len(entries) == 0 {
		sections = append(sections, TeamsSection{
			ActivityTitle:    "✅ " + AllClearText,
			ActivitySubtitle: "No action needed",
		})
	}

	for _, e := range entries {
		sections = append(sections, TeamsSection{
			ActivityTitle:    review.StatusGlyph(e) + " " + review.StatusText(e),
			ActivitySubtitle: e.Title,
			Facts: []TeamsFact{
				{Name: "Repository:", Value: e.Repo},
				{Name: "Author:", Value: e.Author},
				{Name: "Approvals:", Value: strconv.Itoa(e.Approvals)},
			},
			PotentialAction: []TeamsAction{
				{
					Type:    "OpenUri",
					Name:    "View PR",
					Targets: []TeamsTarget{{OS: "default", URI: e.URL}},
				},
			},
		})
	}

	color := teamsColorAttention
	if len(entries) == 0 {
		color = teamsColorOK
	}

	return TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		Summary:    Summary(len(entries)),
		ThemeColor: color,
		Title:      Title(len(entries)),
		Sections:   sections,
	}
}
