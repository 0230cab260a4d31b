package slack

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func changedResult() engine.Result {
	return engine.New(nil).Classify("지금 바로 시작해서 오늘 안에 끝내자", mode.Delay)
}

func TestFormatModeChange(t *testing.T) {
	owner := uuid.MustParse("9f6ed519-0000-0000-0000-000000000000")
	msg := formatModeChange(owner, "entry-7", changedResult())

	checks := []string{
		"DELAY → *DECISIVE*",
		"9f6ed519-0000-0000-0000-000000000000",
		"entry-7",
		"• DECISIVE",
		"◀",
		"• EXPLORATORY",
	}
	for _, check := range checks {
		if !strings.Contains(msg, check) {
			t.Errorf("expected message to contain %q:\n%s", check, msg)
		}
	}
	if strings.Count(msg, "◀") != 1 {
		t.Errorf("expected exactly one marker:\n%s", msg)
	}
}

func TestFormatModeChange_NoEntryID(t *testing.T) {
	msg := formatModeChange(uuid.New(), "", changedResult())
	if strings.Contains(msg, "Entry:") {
		t.Errorf("expected no entry field:\n%s", msg)
	}
}

func TestPostModeChange(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer xoxb-test" {
			t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "ts": "1700000000.000100"})
	}))
	defer server.Close()

	p := NewPoster("xoxb-test", "C12345", discardLogger())
	p.apiURL = server.URL

	ts, err := p.PostModeChange(context.Background(), uuid.New(), "entry-1", changedResult())
	if err != nil {
		t.Fatalf("PostModeChange: %v", err)
	}
	if ts != "1700000000.000100" {
		t.Errorf("unexpected ts %q", ts)
	}
	if got["channel"] != "C12345" {
		t.Errorf("expected channel C12345, got %v", got["channel"])
	}
	if text, _ := got["text"].(string); !strings.Contains(text, "DECISIVE") {
		t.Errorf("expected mode in text, got %q", text)
	}
}

func TestPostModeChange_SlackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "channel_not_found"})
	}))
	defer server.Close()

	p := NewPoster("xoxb-test", "C404", discardLogger())
	p.apiURL = server.URL

	_, err := p.PostModeChange(context.Background(), uuid.New(), "entry-1", changedResult())
	if err == nil || !strings.Contains(err.Error(), "channel_not_found") {
		t.Fatalf("expected channel_not_found error, got %v", err)
	}
}
