package songs

import "strings"

// Verdict is the outcome of checking one candidate against the filter.
type Verdict int

const (
	Accepted Verdict = iota
	RejectedEmpty
	RejectedMalformedTimestamp
	RejectedSymbolsOnly
	RejectedExcluded
	RejectedURL
	RejectedDuplicate
)

// Verdicts lists every verdict in evaluation order.
var Verdicts = []Verdict{
	Accepted,
	RejectedEmpty,
	RejectedMalformedTimestamp,
	RejectedSymbolsOnly,
	RejectedExcluded,
	RejectedURL,
	RejectedDuplicate,
}

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectedEmpty:
		return "empty"
	case RejectedMalformedTimestamp:
		return "malformed_timestamp"
	case RejectedSymbolsOnly:
		return "symbols_only"
	case RejectedExcluded:
		return "excluded"
	case RejectedURL:
		return "url"
	case RejectedDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Accumulator is an insertion-ordered set of accepted titles. It is both the
// result of a filter pass and the dedup index for it.
type Accumulator struct {
	titles []string
	seen   map[string]struct{}
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[string]struct{})}
}

// Contains reports whether title was already accepted.
func (a *Accumulator) Contains(title string) bool {
	_, ok := a.seen[title]
	return ok
}

// Add appends title unless it is already present and reports whether it was
// added.
func (a *Accumulator) Add(title string) bool {
	if a.Contains(title) {
		return false
	}
	a.seen[title] = struct{}{}
	a.titles = append(a.titles, title)
	return true
}

// Len returns the number of accepted titles.
func (a *Accumulator) Len() int {
	return len(a.titles)
}

// Titles returns a copy of the accepted titles in acceptance order.
func (a *Accumulator) Titles() []string {
	out := make([]string, len(a.titles))
	copy(out, a.titles)
	return out
}

// StripTimestamp removes the first inline timestamp run ("0:01 1:23 4:56 ")
// from candidate. Later runs are left alone.
func StripTimestamp(candidate string) string {
	loc := timestampRunPattern.FindStringIndex(candidate)
	if loc == nil {
		return candidate
	}
	return candidate[:loc[0]] + candidate[loc[1]:]
}

// Normalize trims candidate, strips its timestamp run and trims again.
func Normalize(candidate string) string {
	return strings.TrimSpace(StripTimestamp(strings.TrimSpace(candidate)))
}

// Check evaluates an already normalized song against the filter rules and the
// titles accepted so far. acc may be nil when no titles were accepted yet.
func Check(t *Tables, song string, acc *Accumulator) Verdict {
	switch {
	case song == "":
		return RejectedEmpty
	case malformedTimestampPattern.MatchString(song):
		return RejectedMalformedTimestamp
	case symbolsOnlyPattern.MatchString(song):
		return RejectedSymbolsOnly
	case t.IsExcluded(song):
		return RejectedExcluded
	case strings.Contains(song, "http"):
		return RejectedURL
	case acc != nil && acc.Contains(song):
		return RejectedDuplicate
	default:
		return Accepted
	}
}

// Keep reports whether song passes every filter rule. It does not record the
// song; see Accumulator.Add.
func Keep(t *Tables, song string, acc *Accumulator) bool {
	return Check(t, song, acc) == Accepted
}

// FilterStats counts verdicts for one filter pass.
type FilterStats map[Verdict]int

// Filter normalizes every candidate in order and returns the accepted,
// deduplicated titles in first-seen order.
func Filter(t *Tables, candidates []string) []string {
	titles, _ := FilterWithStats(t, candidates)
	return titles
}

// FilterWithStats is Filter that also reports how many candidates each rule
// rejected.
func FilterWithStats(t *Tables, candidates []string) ([]string, FilterStats) {
	acc := NewAccumulator()
	stats := make(FilterStats, len(Verdicts))
	for _, candidate := range candidates {
		song := Normalize(candidate)
		verdict := Check(t, song, acc)
		stats[verdict]++
		if verdict == Accepted {
			acc.Add(song)
		}
	}
	return acc.Titles(), stats
}
