package scorer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

// Term is one weighted signal contribution. Inverted terms use (3 - value).
type Term struct {
	Signal   signals.Field `yaml:"signal" json:"signal"`
	Weight   float64       `yaml:"weight" json:"weight"`
	Inverted bool          `yaml:"inverted,omitempty" json:"inverted,omitempty"`
}

// Transition holds the previous-mode bias constants.
type Transition struct {
	Retention        float64 `yaml:"retention" json:"retention"`
	SwingPenalty     float64 `yaml:"swing_penalty" json:"swing_penalty"`
	Adjacency        float64 `yaml:"adjacency" json:"adjacency"`
	HysteresisMargin float64 `yaml:"hysteresis_margin" json:"hysteresis_margin"`
}

// Weights is a complete tuning table. A Scorer keeps its own copy, so a
// Weights value can be edited freely after it has been handed over.
type Weights struct {
	Name        string                `yaml:"name" json:"name"`
	Terms       map[mode.Mode][]Term  `yaml:"terms" json:"terms"`
	Calibration map[mode.Mode]float64 `yaml:"calibration" json:"calibration"`
	Transition  Transition            `yaml:"transition" json:"transition"`
}

// DefaultWeights returns the canonical table.
func DefaultWeights() Weights {
	inv := func(f signals.Field, w float64) Term { return Term{Signal: f, Weight: w, Inverted: true} }
	dir := func(f signals.Field, w float64) Term { return Term{Signal: f, Weight: w} }

	return Weights{
		Name: "canonical",
		Terms: map[mode.Mode][]Term{
			mode.Delay: {
				dir(signals.AnalysisParalysis, 1.6),
				dir(signals.PriorityConfusion, 1.4),
				inv(signals.EnergyLevel, 1.0),
				dir(signals.ResponsibilityAvoidance, 0.8),
			},
			mode.Stabilize: {
				inv(signals.PriorityConfusion, 0.8),
				inv(signals.AnalysisParalysis, 0.8),
				inv(signals.EmotionVsLogic, 0.5),
				inv(signals.RiskAvoidance, 0.3),
			},
			mode.Reflect: {
				dir(signals.EmotionVsLogic, 2.0),
				dir(signals.AnalysisParalysis, 1.0),
				dir(signals.ResponsibilityAvoidance, 0.5),
				inv(signals.EnergyLevel, 0.5),
			},
			mode.Simplify: {
				dir(signals.PriorityConfusion, 2.0),
				dir(signals.AnalysisParalysis, 0.7),
				inv(signals.EnergyLevel, 0.5),
				dir(signals.EmotionVsLogic, 0.3),
			},
			mode.Decisive: {
				dir(signals.EnergyLevel, 2.0),
				inv(signals.AnalysisParalysis, 0.8),
				inv(signals.PriorityConfusion, 0.8),
				inv(signals.RiskAvoidance, 0.5),
			},
			mode.Exploratory: {
				dir(signals.NoveltyDrive, 2.0),
				dir(signals.EnergyLevel, 1.0),
				inv(signals.RiskAvoidance, 0.5),
			},
		},
		Calibration: map[mode.Mode]float64{
			mode.Delay:       1.05,
			mode.Stabilize:   0.7,
			mode.Reflect:     1.05,
			mode.Simplify:    1.1,
			mode.Decisive:    1.15,
			mode.Exploratory: 1.2,
		},
		Transition: Transition{
			Retention:        0.5,
			SwingPenalty:     0.5,
			Adjacency:        0.3,
			HysteresisMargin: 1.0,
		},
	}
}

// Clone returns a deep copy.
func (w Weights) Clone() Weights {
	out := Weights{
		Name:        w.Name,
		Terms:       make(map[mode.Mode][]Term, len(w.Terms)),
		Calibration: make(map[mode.Mode]float64, len(w.Calibration)),
		Transition:  w.Transition,
	}
	for m, terms := range w.Terms {
		cp := make([]Term, len(terms))
		copy(cp, terms)
		out.Terms[m] = cp
	}
	for m, f := range w.Calibration {
		out.Calibration[m] = f
	}
	return out
}

// Validate checks every mode, field and number in the table. Every mode
// needs a terms entry; an explicit empty list scores on boosts alone.
// Errors are reported in canonical mode order.
func (w Weights) Validate() error {
	var errs []error
	errs = append(errs, unknownModes("terms", w.Terms)...)
	errs = append(errs, unknownModes("calibration", w.Calibration)...)

	for _, m := range mode.All() {
		terms, ok := w.Terms[m]
		if !ok {
			errs = append(errs, fmt.Errorf("terms: missing list for %s", m))
		}
		for i, t := range terms {
			if _, err := signals.ParseField(string(t.Signal)); err != nil {
				errs = append(errs, fmt.Errorf("terms[%s][%d]: %w", m, i, err))
			}
			if !finite(t.Weight) {
				errs = append(errs, fmt.Errorf("terms[%s][%d]: weight is not finite", m, i))
			}
		}

		f, ok := w.Calibration[m]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("calibration: missing factor for %s", m))
		case !finite(f) || f <= 0:
			errs = append(errs, fmt.Errorf("calibration[%s]: must be a positive number, got %v", m, f))
		}
	}

	tr := w.Transition
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"retention", tr.Retention},
		{"swing_penalty", tr.SwingPenalty},
		{"adjacency", tr.Adjacency},
		{"hysteresis_margin", tr.HysteresisMargin},
	} {
		if !finite(v.value) || v.value < 0 {
			errs = append(errs, fmt.Errorf("transition.%s: must be a non-negative number, got %v", v.name, v.value))
		}
	}
	return errors.Join(errs...)
}

func unknownModes[V any](section string, table map[mode.Mode]V) []error {
	var unknown []string
	for m := range table {
		if !m.Valid() {
			unknown = append(unknown, string(m))
		}
	}
	slices.Sort(unknown)
	errs := make([]error, 0, len(unknown))
	for _, m := range unknown {
		errs = append(errs, fmt.Errorf("%s: unknown mode %q", section, m))
	}
	return errs
}

// LoadWeights reads and validates a YAML weight table.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read weights: %w", err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes and validates a YAML weight table.
func ParseWeights(data []byte) (Weights, error) {
	var w Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, fmt.Errorf("invalid weights: %w", err)
	}
	return w, nil
}

// SaveWeights writes w as YAML.
func SaveWeights(path string, w Weights) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write weights: %w", err)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
