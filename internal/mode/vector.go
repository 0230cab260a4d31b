package mode

// Boosts maps every mode to a non-negative pattern bonus.
type Boosts map[Mode]int

// Scores maps every mode to its final score.
type Scores map[Mode]float64

// NewBoosts returns a Boosts with all six modes present at zero.
func NewBoosts() Boosts {
	b := make(Boosts, Count)
	for _, m := range canonical {
		b[m] = 0
	}
	return b
}

// NewScores returns a Scores with all six modes present at zero.
func NewScores() Scores {
	s := make(Scores, Count)
	for _, m := range canonical {
		s[m] = 0
	}
	return s
}

// Get returns the boost for m. Missing and negative values read as 0.
func (b Boosts) Get(m Mode) int {
	if v := b[m]; v > 0 {
		return v
	}
	return 0
}

// Clone returns a full copy with all six modes present.
func (b Boosts) Clone() Boosts {
	out := NewBoosts()
	for _, m := range canonical {
		out[m] = b.Get(m)
	}
	return out
}

// Clone returns a full copy with all six modes present.
func (s Scores) Clone() Scores {
	out := NewScores()
	for _, m := range canonical {
		out[m] = s[m]
	}
	return out
}

// Best returns the mode with the strictly highest score. Equal scores resolve
// to the earliest mode in canonical order.
func (s Scores) Best() (Mode, float64) {
	best := canonical[0]
	bestScore := s[best]
	for _, m := range canonical[1:] {
		if s[m] > bestScore {
			best, bestScore = m, s[m]
		}
	}
	return best, bestScore
}
