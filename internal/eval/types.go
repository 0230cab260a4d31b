package eval

import (
	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/mode"
)

// Classifier is the part of the engine the harness needs.
type Classifier interface {
	Classify(text string, prev mode.Mode) engine.Result
}

// Sample is one hand-labelled entry.
type Sample struct {
	ID       string    `yaml:"id" json:"id"`
	Text     string    `yaml:"text" json:"text"`
	Previous mode.Mode `yaml:"previous,omitempty" json:"previous,omitempty"`
	Expected mode.Mode `yaml:"expected" json:"expected"`
}

// Miss is a sample the classifier got wrong.
type Miss struct {
	Sample Sample      `json:"sample"`
	Got    mode.Mode   `json:"got"`
	Scores mode.Scores `json:"scores"`
}

// ModeStats holds per-mode precision and recall.
type ModeStats struct {
	Support   int     `json:"support"`
	Predicted int     `json:"predicted"`
	Correct   int     `json:"correct"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Report summarises one run over a sample set.
type Report struct {
	Total     int                             `json:"total"`
	Correct   int                             `json:"correct"`
	Accuracy  float64                         `json:"accuracy"`
	Confusion map[mode.Mode]map[mode.Mode]int `json:"confusion"` // expected → predicted → count
	PerMode   map[mode.Mode]ModeStats         `json:"per_mode"`
	Misses    []Miss                          `json:"misses,omitempty"`
}
