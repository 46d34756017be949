package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeText converts CRLF and lone CR line endings to LF and composes the
// text to Unicode NFC.
func NormalizeText(value string) string {
	if value == "" {
		return value
	}
	return norm.NFC.String(lineEndingReplacer.Replace(value))
}
