package notify

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ryo246912/gh-pr-attention/internal/models"
)

// Webhook posts JSON payloads to incoming webhook URLs
type Webhook struct {
	client *http.Client
	logger *slog.Logger
}

func NewWebhook(client *http.Client, logger *slog.Logger) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Webhook{client: client, logger: logger}
}

// Send posts payload to url. An empty url skips the channel without error.
func (w *Webhook) Send(channel, url string, payload any) error {
	if url == "" {
		w.logger.Info("webhook URL not set, skipping notification", "channel", channel)
		return nil
	}

	body, err := Encode(payload)
	if err != nil {
		return fmt.Errorf("failed to build %s notification: %w", channel, err)
	}

	resp, err := w.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send %s notification: %w", channel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send %s notification: %s", channel, resp.Status)
	}

	w.logger.Info("notification sent", "channel", channel)
	return nil
}

// Notifier sends the attention list to every configured channel
type Notifier struct {
	webhook  *Webhook
	slackURL string
	teamsURL string
	logger   *slog.Logger
}

func NewNotifier(webhook *Webhook, slackURL, teamsURL string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{webhook: webhook, slackURL: slackURL, teamsURL: teamsURL, logger: logger}
}

// NotifyAll sends to Slack then Teams. A failing channel does not stop the
// other one; all failures are returned joined.
func (n *Notifier) NotifyAll(entries []models.AttentionEntry) error {
	var errs []error

	if err := n.webhook.Send("slack", n.slackURL, BuildSlackMessage(entries)); err != nil {
		n.logger.Error("slack notification failed", "error", err)
		errs = append(errs, err)
	}

	if err := n.webhook.Send("teams", n.teamsURL, BuildTeamsMessage(entries)); err != nil {
		n.logger.Error("teams notification failed", "error", err)
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
