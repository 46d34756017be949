package songs

// Extract selects a strategy for description and returns its candidate lines.
func Extract(t *Tables, description string) (Strategy, []string) {
	strategy := Select(t, description)
	switch strategy {
	case StrategyIdentifier:
		return strategy, ExtractAfterIdentifier(t, description)
	case StrategyDelimiterSplit:
		return strategy, ExtractFromPieces(SplitPieces(description))
	default:
		return strategy, ExtractSongLines(description)
	}
}

// ExtractAfterIdentifier returns the non-empty lines that follow the first
// line containing an identifier phrase. Later identifier lines are headings
// and are skipped. Collection stops at the first empty line or hyphen line.
func ExtractAfterIdentifier(t *Tables, description string) []string {
	var candidates []string
	found := false
	for _, line := range splitLines(description) {
		if t.HasIdentifier(line) {
			found = true
			continue
		}
		if !found {
			continue
		}
		if line == "" || IsHyphenLine(line) {
			break
		}
		candidates = append(candidates, line)
	}
	return candidates
}

// ExtractFromPieces returns every line of the song block, blank lines
// included. pieces must come from SplitPieces and hold six blocks; any other
// shape yields nil.
func ExtractFromPieces(pieces []string) []string {
	if len(pieces) != delimitedPieceCount {
		return nil
	}
	return splitLines(pieces[songPieceIndex])
}

// ExtractSongLines returns every line shaped like "Artist - Title". It also
// picks up credits or handles written the same way; the filter stage is
// the only thing that removes them.
func ExtractSongLines(description string) []string {
	return songLinePattern.FindAllString(description, -1)
}
