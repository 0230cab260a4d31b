package patterns

import "github.com/MikeSquared-Agency/augur/internal/mode"

// Rule grants Delta to Mode when When holds for the detected gates.
type Rule struct {
	Name  string
	Mode  mode.Mode
	Delta int
	When  func(Gates) bool
}

// defaultRules is the canonical boost table. Within a mode the strongest
// matching rule wins; tiers do not stack.
var defaultRules = []Rule{
	{Name: "workload-inertia", Mode: mode.Delay, Delta: 2, When: func(g Gates) bool {
		return g.Workload && g.Inertia
	}},
	{Name: "postpone", Mode: mode.Delay, Delta: 1, When: func(g Gates) bool {
		return g.Postpone
	}},

	{Name: "steady-routine", Mode: mode.Stabilize, Delta: 2, When: func(g Gates) bool {
		return g.Steady
	}},
	{Name: "rest", Mode: mode.Stabilize, Delta: 1, When: func(g Gates) bool {
		return g.Rest
	}},

	{Name: "reflective", Mode: mode.Reflect, Delta: 2, When: func(g Gates) bool {
		return g.Reflective
	}},
	{Name: "introspect", Mode: mode.Reflect, Delta: 1, When: func(g Gates) bool {
		return g.Introspect
	}},

	{Name: "overwhelm-priority", Mode: mode.Simplify, Delta: 3, When: func(g Gates) bool {
		return g.Overwhelm && g.PrioritySearch
	}},
	{Name: "narrow", Mode: mode.Simplify, Delta: 1, When: func(g Gates) bool {
		return g.Narrow
	}},

	{Name: "immediate-action", Mode: mode.Decisive, Delta: 3, When: func(g Gates) bool {
		return g.Now && g.Execute && !g.ReflectiveOrAnxious()
	}},
	{Name: "commitment", Mode: mode.Decisive, Delta: 2, When: func(g Gates) bool {
		return g.Commitment && !g.ReflectiveOrAnxious()
	}},

	{Name: "novelty-excited", Mode: mode.Exploratory, Delta: 3, When: func(g Gates) bool {
		return g.Novelty && (g.Excitement || g.Experiment) && !g.ReflectiveOrAnxious()
	}},
	{Name: "novelty", Mode: mode.Exploratory, Delta: 1, When: func(g Gates) bool {
		return g.Novelty
	}},
}

// Booster derives per-mode pattern bonuses from text.
type Booster struct {
	rules []Rule
}

// NewBooster creates a Booster over the given table. A nil table uses the canonical one.
func NewBooster(table []Rule) *Booster {
	if table == nil {
		table = defaultRules
	}
	cp := make([]Rule, len(table))
	copy(cp, table)
	return &Booster{rules: cp}
}

var defaultBooster = NewBooster(nil)

// Boosts runs the canonical table over text.
func Boosts(text string) mode.Boosts {
	return defaultBooster.Boosts(text)
}

// Boosts returns a bonus for every mode, 0 when nothing matched.
func (b *Booster) Boosts(text string) mode.Boosts {
	out, _ := b.Explain(text)
	return out
}

// Explain is Boosts plus the names of the rules that matched.
func (b *Booster) Explain(text string) (mode.Boosts, []string) {
	return b.apply(DetectGates(text))
}

func (b *Booster) apply(g Gates) (mode.Boosts, []string) {
	out := mode.NewBoosts()
	var matched []string
	for _, r := range b.rules {
		if r.When == nil || !r.When(g) {
			continue
		}
		matched = append(matched, r.Name)
		if r.Delta > out[r.Mode] {
			out[r.Mode] = r.Delta
		}
	}
	return out, matched
}
