package mode

import "strings"

// Mode is one of the six decision-state labels an entry is classified into.
type Mode string

const (
	Delay       Mode = "DELAY"
	Stabilize   Mode = "STABILIZE"
	Reflect     Mode = "REFLECT"
	Simplify    Mode = "SIMPLIFY"
	Decisive    Mode = "DECISIVE"
	Exploratory Mode = "EXPLORATORY"
)

// None is the empty mode, used when there is no previous mode.
const None Mode = ""

// canonical is the fixed order DELAY → ... → EXPLORATORY. It doubles as the
// adjacency cycle and the tie-break order.
var canonical = [...]Mode{Delay, Stabilize, Reflect, Simplify, Decisive, Exploratory}

// Count is the number of valid modes.
const Count = len(canonical)

// All returns the modes in canonical order.
func All() []Mode {
	out := make([]Mode, Count)
	copy(out, canonical[:])
	return out
}

// Parse converts a label to a Mode. Unknown or empty labels return (None, false).
func Parse(s string) (Mode, bool) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return None, false
	}
	return m, true
}

// OrNone returns the parsed mode, or None when s is not a valid label.
func OrNone(s string) Mode {
	m, _ := Parse(s)
	return m
}

// Valid reports whether m is one of the six known labels.
func (m Mode) Valid() bool {
	return m.Index() >= 0
}

// Index returns the position of m in the canonical order, or -1.
func (m Mode) Index() int {
	for i, c := range canonical {
		if c == m {
			return i
		}
	}
	return -1
}

// Next returns the designated successor of m in the adjacency cycle.
// EXPLORATORY has no successor; the cycle does not wrap.
func (m Mode) Next() (Mode, bool) {
	i := m.Index()
	if i < 0 || i == Count-1 {
		return None, false
	}
	return canonical[i+1], true
}

func (m Mode) String() string {
	return string(m)
}
