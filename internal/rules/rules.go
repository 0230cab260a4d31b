package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Matcher tests normalized text for a phrase condition.
type Matcher interface {
	Match(text string) bool
}

// Rule adds Delta to Target when When matches. A rule fires at most once per text.
type Rule[K comparable] struct {
	Name   string
	Target K
	When   Matcher
	Delta  int
}

// Apply evaluates every rule against text and accumulates deltas into acc.
// It returns the names of the rules that fired, in table order.
func Apply[K comparable](rules []Rule[K], text string, acc map[K]int) []string {
	var fired []string
	for _, r := range rules {
		if r.When == nil || !r.When.Match(text) {
			continue
		}
		acc[r.Target] += r.Delta
		fired = append(fired, r.Name)
	}
	return fired
}

// Normalize trims, NFC-composes and lower-cases text. Decomposed Hangul
// (as sent by some macOS clients) would otherwise never match composed keywords.
func Normalize(text string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(text)))
}

type anyPhrase []string

func (a anyPhrase) Match(text string) bool {
	for _, p := range a {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

type allOf []Matcher

func (a allOf) Match(text string) bool {
	if len(a) == 0 {
		return false
	}
	for _, m := range a {
		if !m.Match(text) {
			return false
		}
	}
	return true
}

type eitherOf []Matcher

func (e eitherOf) Match(text string) bool {
	for _, m := range e {
		if m.Match(text) {
			return true
		}
	}
	return false
}

type not struct{ m Matcher }

func (n not) Match(text string) bool {
	return !n.m.Match(text)
}

// Any matches when text contains at least one of the phrases.
// Phrases are normalized the same way as input text.
func Any(phrases ...string) Matcher {
	out := make(anyPhrase, 0, len(phrases))
	for _, p := range phrases {
		if p = Normalize(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// All matches when every matcher matches. An empty All never matches.
func All(ms ...Matcher) Matcher {
	return allOf(ms)
}

// Either matches when at least one matcher matches.
func Either(ms ...Matcher) Matcher {
	return eitherOf(ms)
}

// Not inverts m.
func Not(m Matcher) Matcher {
	return not{m: m}
}
