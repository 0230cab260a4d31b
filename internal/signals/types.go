package signals

import "fmt"

// MaxLevel is the upper bound of every signal field; the lower bound is 0.
const MaxLevel = 3

// Field names one of the seven signal dimensions.
type Field string

const (
	EmotionVsLogic          Field = "emotion_vs_logic"
	RiskAvoidance           Field = "risk_avoidance"
	ResponsibilityAvoidance Field = "responsibility_avoidance"
	AnalysisParalysis       Field = "analysis_paralysis"
	PriorityConfusion       Field = "priority_confusion"
	EnergyLevel             Field = "energy_level"
	NoveltyDrive            Field = "novelty_drive"
)

var fields = [...]Field{
	EmotionVsLogic, RiskAvoidance, ResponsibilityAvoidance, AnalysisParalysis,
	PriorityConfusion, EnergyLevel, NoveltyDrive,
}

// Fields returns the seven fields in declaration order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields[:])
	return out
}

// ParseField converts a snake_case field name to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown signal field %q", s)
}

// Vector holds the seven bounded signals extracted from one entry.
// Low values are the logical / risk-seeking / energetic pole except
// EnergyLevel, where 0 is depleted and 3 is high energy.
type Vector struct {
	EmotionVsLogic          int `json:"emotion_vs_logic" yaml:"emotion_vs_logic"`
	RiskAvoidance           int `json:"risk_avoidance" yaml:"risk_avoidance"`
	ResponsibilityAvoidance int `json:"responsibility_avoidance" yaml:"responsibility_avoidance"`
	AnalysisParalysis       int `json:"analysis_paralysis" yaml:"analysis_paralysis"`
	PriorityConfusion       int `json:"priority_confusion" yaml:"priority_confusion"`
	EnergyLevel             int `json:"energy_level" yaml:"energy_level"`
	NoveltyDrive            int `json:"novelty_drive" yaml:"novelty_drive"`
}

// Baseline is the vector produced for text that triggers no rule.
func Baseline() Vector {
	return Vector{EmotionVsLogic: 1, EnergyLevel: 1}
}

// Get returns the value of f. Unknown fields read as 0.
func (v Vector) Get(f Field) int {
	switch f {
	case EmotionVsLogic:
		return v.EmotionVsLogic
	case RiskAvoidance:
		return v.RiskAvoidance
	case ResponsibilityAvoidance:
		return v.ResponsibilityAvoidance
	case AnalysisParalysis:
		return v.AnalysisParalysis
	case PriorityConfusion:
		return v.PriorityConfusion
	case EnergyLevel:
		return v.EnergyLevel
	case NoveltyDrive:
		return v.NoveltyDrive
	}
	return 0
}

// Sum returns the total of all seven fields.
func (v Vector) Sum() int {
	total := 0
	for _, f := range fields {
		total += v.Get(f)
	}
	return total
}

// Clamped returns a copy with every field restricted to [0, MaxLevel].
func (v Vector) Clamped() Vector {
	return Vector{
		EmotionVsLogic:          clamp(v.EmotionVsLogic),
		RiskAvoidance:           clamp(v.RiskAvoidance),
		ResponsibilityAvoidance: clamp(v.ResponsibilityAvoidance),
		AnalysisParalysis:       clamp(v.AnalysisParalysis),
		PriorityConfusion:       clamp(v.PriorityConfusion),
		EnergyLevel:             clamp(v.EnergyLevel),
		NoveltyDrive:            clamp(v.NoveltyDrive),
	}
}

// FromMap builds a vector from accumulated per-field totals, then clamps.
func FromMap(acc map[Field]int) Vector {
	return Vector{
		EmotionVsLogic:          acc[EmotionVsLogic],
		RiskAvoidance:           acc[RiskAvoidance],
		ResponsibilityAvoidance: acc[ResponsibilityAvoidance],
		AnalysisParalysis:       acc[AnalysisParalysis],
		PriorityConfusion:       acc[PriorityConfusion],
		EnergyLevel:             acc[EnergyLevel],
		NoveltyDrive:            acc[NoveltyDrive],
	}.Clamped()
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}
