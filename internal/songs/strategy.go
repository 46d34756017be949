package songs

// Strategy names the extraction approach chosen for one description.
type Strategy int

const (
	// StrategyIdentifier collects the lines following a song-list heading.
	StrategyIdentifier Strategy = iota + 1
	// StrategyDelimiterSplit takes the third of six hyphen-delimited blocks.
	StrategyDelimiterSplit
	// StrategyRegexList collects every "Artist - Title" shaped line.
	StrategyRegexList
)

// delimitedPieceCount is the block count of the channel's canonical layout.
const delimitedPieceCount = 6

// songPieceIndex is the block holding the song list in that layout.
const songPieceIndex = 2

// Strategies lists every strategy in precedence order.
var Strategies = []Strategy{StrategyIdentifier, StrategyDelimiterSplit, StrategyRegexList}

func (s Strategy) String() string {
	switch s {
	case StrategyIdentifier:
		return "identifier"
	case StrategyDelimiterSplit:
		return "delimiter_split"
	case StrategyRegexList:
		return "regex_list"
	default:
		return "unknown"
	}
}

// Select chooses the strategy for description: an identifier phrase wins,
// then the six-block hyphen layout, then the regex fallback.
func Select(t *Tables, description string) Strategy {
	if t.HasIdentifier(description) {
		return StrategyIdentifier
	}
	if CountPieces(description) == delimitedPieceCount {
		return StrategyDelimiterSplit
	}
	return StrategyRegexList
}
