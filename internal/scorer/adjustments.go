package scorer

import (
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

// adjustment is a categorical correction applied after the linear terms.
// Conditions read only the clamped signals and boosts, never running scores,
// so the table can be applied as one batch in any order.
type adjustment struct {
	name  string
	when  func(v signals.Vector, b mode.Boosts) bool
	apply func(s mode.Scores, v signals.Vector)
}

var adjustments = []adjustment{
	{
		name: "stabilize-low-energy",
		when: func(v signals.Vector, _ mode.Boosts) bool { return v.EnergyLevel <= 1 },
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Stabilize] += 0.5
		},
	},
	{
		name: "quiet-state",
		when: func(v signals.Vector, _ mode.Boosts) bool { return v.Sum() <= 1 },
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Stabilize] += 1.5
			s[mode.Delay] -= 0.5
			s[mode.Decisive] -= 0.5
		},
	},
	{
		name: "overwhelmed-emotional",
		when: func(v signals.Vector, _ mode.Boosts) bool {
			return v.PriorityConfusion >= 2 && v.EmotionVsLogic >= 2 && v.EnergyLevel <= 1
		},
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Simplify] += 2
			s[mode.Delay] -= 1
			s[mode.Reflect] += 0.5
		},
	},
	{
		name: "emotional-rumination",
		when: func(v signals.Vector, _ mode.Boosts) bool {
			return v.EmotionVsLogic >= 2 && v.AnalysisParalysis >= 1 && v.NoveltyDrive <= 1
		},
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Reflect] += 1.5
			s[mode.Delay] -= 0.5
			s[mode.Decisive] -= 0.5
		},
	},
	{
		name: "tangled-priorities",
		when: func(v signals.Vector, _ mode.Boosts) bool {
			return v.PriorityConfusion >= 2 && v.AnalysisParalysis >= 1 && v.EnergyLevel <= 1
		},
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Simplify] += 1.5
			s[mode.Delay] -= 1.0
		},
	},
	{
		name: "depleted",
		when: func(v signals.Vector, _ mode.Boosts) bool { return v.EnergyLevel == 0 },
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Decisive] -= 1.0
		},
	},
	{
		name: "decisive-pattern",
		when: func(_ signals.Vector, b mode.Boosts) bool { return b.Get(mode.Decisive) >= 2 },
		apply: func(s mode.Scores, v signals.Vector) {
			s[mode.Decisive] += 3
			s[mode.Exploratory] -= 2
			s[mode.Exploratory] -= float64(v.NoveltyDrive) * 1.5
		},
	},
	{
		name: "risk-averse",
		when: func(v signals.Vector, _ mode.Boosts) bool {
			return v.RiskAvoidance >= 2 && v.NoveltyDrive <= 1
		},
		apply: func(s mode.Scores, _ signals.Vector) {
			s[mode.Stabilize] += 2
			s[mode.Decisive] -= 1
			s[mode.Exploratory] -= 1
		},
	},
}
