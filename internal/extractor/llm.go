package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/augur/internal/anthropic"
	"github.com/MikeSquared-Agency/augur/internal/rules"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

const maxTokens = 256

// Completer is the slice of the Anthropic client the extractor uses.
type Completer interface {
	Complete(ctx context.Context, system string, messages []anthropic.Message, maxTokens int) (string, error)
}

// LLM asks a language model for the signal vector.
type LLM struct {
	llm    Completer
	logger *slog.Logger
}

func NewLLM(llm Completer, logger *slog.Logger) *LLM {
	return &LLM{llm: llm, logger: logger}
}

// Extract returns the baseline for blank text without calling the model.
func (e *LLM) Extract(ctx context.Context, text string) (signals.Vector, error) {
	if rules.Normalize(text) == "" {
		return signals.Baseline(), nil
	}

	messages := []anthropic.Message{
		{Role: "user", Content: fmt.Sprintf(userPrompt, text)},
	}
	raw, err := e.llm.Complete(ctx, systemPrompt, messages, maxTokens)
	if err != nil {
		return signals.Vector{}, fmt.Errorf("llm extraction: %w", err)
	}

	v, err := ParseVector(raw)
	if err != nil {
		e.logger.Error("failed to parse signal response", "error", err, "raw", raw)
		return signals.Vector{}, fmt.Errorf("parse signals: %w", err)
	}

	e.logger.Debug("llm signals extracted", "text_len", len(text), "signals", v)
	return v, nil
}

// ParseVector reads a model reply into a clamped vector. Markdown fences
// and surrounding prose are ignored, unknown keys are skipped, missing keys
// read as 0 and fractional values are rounded.
func ParseVector(raw string) (signals.Vector, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return signals.Vector{}, errors.New("no JSON object in response")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw[start : end+1])))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return signals.Vector{}, fmt.Errorf("decode object: %w", err)
	}
	if nested, ok := obj["signals"].(map[string]any); ok {
		obj = nested
	}

	acc := make(map[signals.Field]int, len(obj))
	for key, val := range obj {
		f, err := signals.ParseField(strings.ToLower(strings.TrimSpace(key)))
		if err != nil {
			continue
		}
		n, err := number(val)
		if err != nil {
			return signals.Vector{}, fmt.Errorf("field %s: %w", f, err)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return signals.Vector{}, fmt.Errorf("field %s: non-finite value", f)
		}
		acc[f] = int(math.Max(0, math.Min(signals.MaxLevel, math.Round(n))))
	}
	return signals.FromMap(acc), nil
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case string:
		return json.Number(strings.TrimSpace(n)).Float64()
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected value %v", v)
}
