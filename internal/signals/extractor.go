package signals

import "github.com/MikeSquared-Agency/augur/internal/rules"

// Extractor maps diary text to a Vector using a phrase rule table.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	rules []rules.Rule[Field]
}

// NewExtractor creates an Extractor over the given table. A nil table uses DefaultRules.
func NewExtractor(table []rules.Rule[Field]) *Extractor {
	if table == nil {
		table = defaultRules
	}
	cp := make([]rules.Rule[Field], len(table))
	copy(cp, table)
	return &Extractor{rules: cp}
}

var defaultExtractor = NewExtractor(nil)

// Extract runs the canonical table over text.
func Extract(text string) Vector {
	return defaultExtractor.Extract(text)
}

// Extract accumulates every matching rule from the baseline, then clamps each field once.
func (e *Extractor) Extract(text string) Vector {
	v, _ := e.Explain(text)
	return v
}

// Explain is Extract plus the names of the rules that fired.
func (e *Extractor) Explain(text string) (Vector, []string) {
	base := Baseline()
	acc := map[Field]int{
		EmotionVsLogic: base.EmotionVsLogic,
		EnergyLevel:    base.EnergyLevel,
	}
	normalized := rules.Normalize(text)
	if normalized == "" {
		return base, nil
	}
	fired := rules.Apply(e.rules, normalized, acc)
	return FromMap(acc), fired
}
