package scorer

import (
	"fmt"

	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

// Scorer turns signals and pattern boosts into per-mode scores and a decision.
// It never mutates its weights and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// New creates a Scorer over a validated copy of w.
func New(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &Scorer{weights: w.Clone()}, nil
}

// Default returns a Scorer over DefaultWeights.
func Default() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

// Weights returns a copy of the scorer's table.
func (s *Scorer) Weights() Weights {
	return s.weights.Clone()
}

// Breakdown shows each stage of a score computation.
type Breakdown struct {
	Base        mode.Scores `json:"base"`
	Adjusted    mode.Scores `json:"adjusted"`
	Final       mode.Scores `json:"final"`
	Adjustments []string    `json:"adjustments,omitempty"`
	Previous    mode.Mode   `json:"previous,omitempty"`
}

// ComputeScores returns the calibrated score of every mode. Signals are
// clamped to [0,3], negative boosts read as 0 and an invalid prev is ignored.
func (s *Scorer) ComputeScores(v signals.Vector, b mode.Boosts, prev mode.Mode) mode.Scores {
	return s.Explain(v, b, prev).Final
}

// Decide returns the selected mode for the given inputs.
func (s *Scorer) Decide(v signals.Vector, b mode.Boosts, prev mode.Mode) mode.Mode {
	return s.Select(s.ComputeScores(v, b, prev), prev)
}

// Select picks the strictly highest score, earliest canonical mode on ties.
// When prev is valid and within the hysteresis margin of the best score,
// prev is kept instead.
func (s *Scorer) Select(scores mode.Scores, prev mode.Mode) mode.Mode {
	best, bestScore := scores.Best()
	if prev.Valid() && prev != best {
		if scores[prev] >= bestScore-s.weights.Transition.HysteresisMargin {
			return prev
		}
	}
	return best
}

// Explain computes scores and keeps every intermediate stage.
func (s *Scorer) Explain(v signals.Vector, b mode.Boosts, prev mode.Mode) Breakdown {
	v = v.Clamped()
	if !prev.Valid() {
		prev = mode.None
	}

	scores := mode.NewScores()
	for _, m := range mode.All() {
		total := float64(b.Get(m))
		for _, t := range s.weights.Terms[m] {
			val := v.Get(t.Signal)
			if t.Inverted {
				val = signals.MaxLevel - val
			}
			total += float64(val) * t.Weight
		}
		scores[m] = total
	}
	base := scores.Clone()

	var applied []string
	for _, a := range adjustments {
		if a.when(v, b) {
			a.apply(scores, v)
			applied = append(applied, a.name)
		}
	}
	adjusted := scores.Clone()

	if prev != mode.None {
		s.applyTransition(scores, prev)
	}

	for _, m := range mode.All() {
		scores[m] *= s.weights.Calibration[m]
	}

	return Breakdown{
		Base:        base,
		Adjusted:    adjusted,
		Final:       scores,
		Adjustments: applied,
		Previous:    prev,
	}
}

func (s *Scorer) applyTransition(scores mode.Scores, prev mode.Mode) {
	tr := s.weights.Transition
	scores[prev] += tr.Retention

	switch prev {
	case mode.Delay:
		scores[mode.Decisive] -= tr.SwingPenalty
	case mode.Decisive:
		scores[mode.Delay] -= tr.SwingPenalty
	}

	if next, ok := prev.Next(); ok {
		scores[next] += tr.Adjacency
	}
}

var defaultScorer = Default()

// ComputeScores scores with the canonical weights.
func ComputeScores(v signals.Vector, b mode.Boosts, prev mode.Mode) mode.Scores {
	return defaultScorer.ComputeScores(v, b, prev)
}

// Decide selects a mode with the canonical weights.
func Decide(v signals.Vector, b mode.Boosts, prev mode.Mode) mode.Mode {
	return defaultScorer.Decide(v, b, prev)
}
