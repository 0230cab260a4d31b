package extractor

import (
	"context"
	"log/slog"

	"github.com/MikeSquared-Agency/augur/internal/signals"
)

// Source produces a signal vector for one entry.
type Source interface {
	Extract(ctx context.Context, text string) (signals.Vector, error)
}

// Rules adapts the phrase-rule extractor to Source. It never fails.
type Rules struct {
	ex *signals.Extractor
}

// NewRules wraps ex. A nil extractor uses the canonical table.
func NewRules(ex *signals.Extractor) *Rules {
	if ex == nil {
		ex = signals.NewExtractor(nil)
	}
	return &Rules{ex: ex}
}

func (r *Rules) Extract(_ context.Context, text string) (signals.Vector, error) {
	return r.ex.Extract(text), nil
}

// Fallback tries primary and falls back to the rule extractor on any error.
type Fallback struct {
	primary Source
	rules   *Rules
	logger  *slog.Logger
}

func NewFallback(primary Source, logger *slog.Logger) *Fallback {
	return &Fallback{primary: primary, rules: NewRules(nil), logger: logger}
}

// Extract never returns an error.
func (f *Fallback) Extract(ctx context.Context, text string) (signals.Vector, error) {
	v, err := f.primary.Extract(ctx, text)
	if err == nil {
		return v, nil
	}
	f.logger.Warn("signal extraction failed, using rules", "error", err, "text_len", len(text))
	return f.rules.Extract(ctx, text)
}
