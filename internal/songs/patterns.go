package songs

import (
	"regexp"
	"strings"
)

var (
	// hyphenLinePattern matches a delimiter line made of '-', '?' and spaces.
	hyphenLinePattern = regexp.MustCompile(`(?m)^[- ?]+$`)

	// hyphenLineExact is hyphenLinePattern anchored to a single line.
	hyphenLineExact = regexp.MustCompile(`^[- ?]+$`)

	// timestampRunPattern matches up to three "H:MM" groups separated by
	// single spaces, followed by a space: "0:00 1:23 4:56 ".
	timestampRunPattern = regexp.MustCompile(`\d{1,2}:\d{2}(?: \d{1,2}:\d{2}){0,2} `)

	// malformedTimestampPattern matches the "H:MM - H:MM - H:MM" artifact.
	malformedTimestampPattern = regexp.MustCompile(`^\d{1,2}:\d{1,2} - \d{1,2}:\d{1,2} - \d{1,2}:\d{1,2}$`)

	// symbolsOnlyPattern matches a line without a single ASCII letter.
	symbolsOnlyPattern = regexp.MustCompile(`^[^A-Za-z]+$`)

	// songLinePattern matches "<text> - <text>[ - <text>...]" lines.
	songLinePattern = regexp.MustCompile(`(?m)^(?:[a-zA-Z0-9 '&.()!,]+ - )+[a-zA-Z0-9 '&.()!,]+$`)
)

// SplitPieces cuts a description on hyphen lines. Text on either side of a
// delimiter keeps its surrounding newlines.
func SplitPieces(description string) []string {
	return hyphenLinePattern.Split(description, -1)
}

// CountPieces returns len(SplitPieces(description)).
func CountPieces(description string) int {
	return len(SplitPieces(description))
}

// IsHyphenLine reports whether line is a delimiter line.
func IsHyphenLine(line string) bool {
	return hyphenLineExact.MatchString(line)
}

// splitLines breaks text into lines. A trailing newline does not produce an
// empty final line, and empty text yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
