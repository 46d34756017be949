package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxConsoleValueRunes clips long text such as a full video description so a
// console record stays readable. JSON output is never clipped.
const maxConsoleValueRunes = 160

var lineBreakEscaper = strings.NewReplacer("\r\n", `\n`, "\r", `\n`, "\n", `\n`)

// attrString renders a value for the header and info field list.
func attrString(v slog.Value) string {
	return renderValue(v, false)
}

// formatValue renders a value for debug records, quoting when needed.
func formatValue(v slog.Value) string {
	return renderValue(v, true)
}

func renderValue(v slog.Value, quote bool) string {
	v = v.Resolve()
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return formatDuration(v.Duration())
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindString:
		s = v.String()
	case slog.KindAny:
		s = anyString(v.Any())
	default:
		s = v.String()
	}
	if !quote {
		return clipValue(lineBreakEscaper.Replace(s))
	}
	s = clipValue(s)
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func anyString(value any) string {
	switch val := value.(type) {
	case error:
		return val.Error()
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(value)
	}
}

func clipValue(s string) string {
	if utf8.RuneCountInString(s) <= maxConsoleValueRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxConsoleValueRunes]) + "…"
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
