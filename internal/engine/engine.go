package engine

import (
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/patterns"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

// Result is everything one classification produced.
type Result struct {
	Mode     mode.Mode      `json:"mode"`
	Previous mode.Mode      `json:"previous_mode,omitempty"`
	Signals  signals.Vector `json:"signals"`
	Boosts   mode.Boosts    `json:"boosts"`
	Scores   mode.Scores    `json:"scores"`
}

// Changed reports whether the decision differs from a valid previous mode.
func (r Result) Changed() bool {
	return r.Previous != mode.None && r.Previous != r.Mode
}

// Engine runs text → signals → boosts → scores → mode. It is a pure
// function of its inputs and safe for concurrent use.
type Engine struct {
	extractor *signals.Extractor
	booster   *patterns.Booster
	scorer    *scorer.Scorer
}

// New builds an Engine over the canonical rule tables and the given scorer.
// A nil scorer uses the canonical weights.
func New(s *scorer.Scorer) *Engine {
	if s == nil {
		s = scorer.Default()
	}
	return &Engine{
		extractor: signals.NewExtractor(nil),
		booster:   patterns.NewBooster(nil),
		scorer:    s,
	}
}

// Scorer returns the scorer in use.
func (e *Engine) Scorer() *scorer.Scorer {
	return e.scorer
}

// Classify extracts signals from text and decides a mode.
func (e *Engine) Classify(text string, prev mode.Mode) Result {
	return e.ClassifyWithSignals(text, e.extractor.Extract(text), prev)
}

// ClassifyWithSignals decides a mode from externally supplied signals, such
// as an LLM extraction. Boosts are still derived from text.
func (e *Engine) ClassifyWithSignals(text string, v signals.Vector, prev mode.Mode) Result {
	if !prev.Valid() {
		prev = mode.None
	}
	v = v.Clamped()
	boosts := e.booster.Boosts(text)
	scores := e.scorer.ComputeScores(v, boosts, prev)
	return Result{
		Mode:     e.scorer.Select(scores, prev),
		Previous: prev,
		Signals:  v,
		Boosts:   boosts,
		Scores:   scores,
	}
}

// Signals exposes the rule-based extractor.
func (e *Engine) Signals(text string) signals.Vector {
	return e.extractor.Extract(text)
}

// Explanation traces one classification through every stage.
type Explanation struct {
	Result
	SignalRules  []string    `json:"signal_rules"`
	PatternRules []string    `json:"pattern_rules"`
	Adjustments  []string    `json:"adjustments"`
	BaseScores   mode.Scores `json:"base_scores"`
}

// Explain is Classify plus the rules and adjustments that fired.
func (e *Engine) Explain(text string, prev mode.Mode) Explanation {
	if !prev.Valid() {
		prev = mode.None
	}
	v, signalRules := e.extractor.Explain(text)
	boosts, patternRules := e.booster.Explain(text)
	bd := e.scorer.Explain(v, boosts, prev)
	return Explanation{
		Result: Result{
			Mode:     e.scorer.Select(bd.Final, prev),
			Previous: prev,
			Signals:  v,
			Boosts:   boosts,
			Scores:   bd.Final,
		},
		SignalRules:  signalRules,
		PatternRules: patternRules,
		Adjustments:  bd.Adjustments,
		BaseScores:   bd.Base,
	}
}
