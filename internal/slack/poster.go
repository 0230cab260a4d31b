package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

// Poster posts mode-change notices to one Slack channel.
type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostModeChange announces that an owner's mode moved away from the
// previous one. Returns the message timestamp.
func (p *Poster) PostModeChange(ctx context.Context, owner uuid.UUID, entryID string, res engine.Result) (string, error) {
	text := formatModeChange(owner, entryID, res)

	ts, err := p.post(ctx, map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	p.logger.Info("posted mode change to slack", "ts", ts, "owner", owner.String(), "mode", res.Mode)
	return ts, nil
}

func (p *Poster) post(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}

func formatModeChange(owner uuid.UUID, entryID string, res engine.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Mode change:* %s → *%s*\n", res.Previous, res.Mode)
	fmt.Fprintf(&sb, "*Owner:* %s", owner.String())
	if entryID != "" {
		fmt.Fprintf(&sb, " | *Entry:* %s", entryID)
	}
	sb.WriteString("\n\n")

	sb.WriteString("*Scores:*")
	for _, m := range mode.All() {
		marker := ""
		if m == res.Mode {
			marker = " ◀"
		}
		fmt.Fprintf(&sb, "\n• %s %.2f%s", m, res.Scores[m], marker)
	}
	return sb.String()
}
