package songs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var defaultIdentifiers = []string{
	"song list",
	"songs list",
	"s o n g l i s t",
	"sound demo",
}

var defaultExclusions = []string{
	"intro",
	"leak test",
	"lack of leak test",
	"final words",
	"creepy fingers",
	"- intro",
	"final thought",
	"final thoughts",
	"thanks to delta deka for timestamps",
	"final word",
}

// Tables holds the identifier and exclusion phrases. A Tables value is never
// mutated after construction and is safe to share.
type Tables struct {
	identifiers []string
	exclusions  map[string]struct{}
}

var defaultTables = NewTables(defaultIdentifiers, defaultExclusions)

// DefaultTables returns the compiled-in literal tables.
func DefaultTables() *Tables {
	return defaultTables
}

// NewTables builds a Tables from identifier and exclusion phrases. Phrases are
// trimmed and lowercased; empty phrases are dropped.
func NewTables(identifiers, exclusions []string) *Tables {
	t := &Tables{
		identifiers: make([]string, 0, len(identifiers)),
		exclusions:  make(map[string]struct{}, len(exclusions)),
	}
	for _, phrase := range identifiers {
		phrase = lower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		t.identifiers = append(t.identifiers, phrase)
	}
	for _, phrase := range exclusions {
		phrase = lower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		t.exclusions[phrase] = struct{}{}
	}
	return t
}

// HasIdentifier reports whether text contains any identifier phrase,
// ignoring case.
func (t *Tables) HasIdentifier(text string) bool {
	folded := lower(text)
	for _, phrase := range t.identifiers {
		if strings.Contains(folded, phrase) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the lowercased song equals an exclusion phrase.
func (t *Tables) IsExcluded(song string) bool {
	_, ok := t.exclusions[lower(song)]
	return ok
}

// Identifiers returns a copy of the identifier phrases.
func (t *Tables) Identifiers() []string {
	out := make([]string, len(t.identifiers))
	copy(out, t.identifiers)
	return out
}

// ExclusionCount returns the number of exclusion phrases.
func (t *Tables) ExclusionCount() int {
	return len(t.exclusions)
}

// A Caser is stateful, so build one per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
