package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// prettyHandler renders human-oriented multi-line records for terminals.
type prettyHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	kvs := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&kvs, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&kvs, h.groups, attr)
		return true
	})

	allAttrs := make([]kv, len(kvs))
	copy(allAttrs, kvs)

	var component string
	var runID string
	var subject string
	filtered := make([]kv, 0, len(kvs))
	for _, kv := range kvs {
		switch kv.key {
		case FieldComponent:
			if component == "" {
				component = attrString(kv.value)
			}
			continue
		case FieldRunID:
			if runID == "" {
				runID = attrString(kv.value)
			}
			continue
		case FieldVideoID:
			if subject == "" {
				subject = "video " + attrString(kv.value)
			}
		case FieldDescriptionIndex:
			if subject == "" {
				subject = "description #" + attrString(kv.value)
			}
		}
		filtered = append(filtered, kv)
	}

	filtered = dedupeKVsByKey(filtered)
	allAttrs = dedupeKVsByKey(allAttrs)

	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}

	header := logHeader{
		ts:        timestamp,
		level:     record.Level,
		component: component,
		subject:   composeSubject(runID, subject),
		message:   message,
	}
	if h.addSource {
		header.source = record.Source()
	}

	var buf bytes.Buffer
	buf.Grow(256 + len(filtered)*32)

	h.mu.Lock()
	defer h.mu.Unlock()
	if record.Level < slog.LevelInfo {
		writeDebug(&buf, header, allAttrs)
	} else {
		writeInfo(&buf, header, filtered)
	}
	_, err := h.writer.Write(buf.Bytes())
	return err
}

type logHeader struct {
	ts        time.Time
	level     slog.Level
	component string
	subject   string
	message   string
	source    *slog.Source
}

// maxInfoFields caps the fields printed beneath an info line.
const maxInfoFields = 8

type infoField struct {
	label string
	value string
}

func writeInfo(buf *bytes.Buffer, header logHeader, attrs []kv) {
	writeLogHeader(buf, header)
	buf.WriteByte('\n')
	fields, hidden := selectInfoFields(attrs, maxInfoFields)
	for _, field := range fields {
		buf.WriteString("    - ")
		buf.WriteString(field.label)
		buf.WriteString(": ")
		buf.WriteString(field.value)
		buf.WriteByte('\n')
	}
	if hidden > 0 {
		buf.WriteString("    + ")
		buf.WriteString(strconv.Itoa(hidden))
		buf.WriteString(" more field")
		if hidden != 1 {
			buf.WriteByte('s')
		}
		buf.WriteString(" hidden\n")
	}
}

func writeDebug(buf *bytes.Buffer, header logHeader, attrs []kv) {
	writeLogHeader(buf, header)
	buf.WriteByte('\n')
	for _, kv := range attrs {
		if kv.key == "" {
			continue
		}
		buf.WriteString("    ")
		buf.WriteString(kv.key)
		buf.WriteString(": ")
		buf.WriteString(formatValue(kv.value))
		buf.WriteByte('\n')
	}
}

func writeLogHeader(buf *bytes.Buffer, header logHeader) {
	buf.WriteString(formatTimestamp(header.ts))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(header.level))
	if header.component != "" {
		buf.WriteString(" [")
		buf.WriteString(header.component)
		buf.WriteByte(']')
	}
	if header.subject != "" {
		buf.WriteByte(' ')
		buf.WriteString(header.subject)
	}
	buf.WriteString(" – ")
	buf.WriteString(header.message)
	if src := header.source; src != nil && src.File != "" {
		buf.WriteString(" [")
		buf.WriteString(filepath.Base(src.File))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(src.Line))
		buf.WriteByte(']')
	}
}

// composeSubject renders "Run 1a2b3c4d · video xyz" style prefixes.
func composeSubject(runID, subject string) string {
	runID = strings.TrimSpace(runID)
	subject = strings.TrimSpace(subject)
	parts := make([]string, 0, 2)
	if runID != "" {
		if len(runID) > 8 {
			runID = runID[:8]
		}
		parts = append(parts, "Run "+runID)
	}
	if subject != "" {
		parts = append(parts, subject)
	}
	return strings.Join(parts, " · ")
}

// selectInfoFields drops bookkeeping keys and the error hint, keeping up to
// limit fields in record order.
func selectInfoFields(attrs []kv, limit int) ([]infoField, int) {
	fields := make([]infoField, 0, len(attrs))
	hidden := 0
	for _, attr := range attrs {
		switch attr.key {
		case "", FieldEventType, FieldErrorHint:
			continue
		}
		if limit > 0 && len(fields) >= limit {
			hidden++
			continue
		}
		fields = append(fields, infoField{
			label: strings.ReplaceAll(attr.key, "_", " "),
			value: attrString(attr.value),
		})
	}
	return fields, hidden
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *prettyHandler) clone() *prettyHandler {
	clone := &prettyHandler{
		mu:        h.mu,
		writer:    h.writer,
		level:     h.level,
		addSource: h.addSource,
	}
	if len(h.attrs) > 0 {
		clone.attrs = make([]slog.Attr, len(h.attrs))
		copy(clone.attrs, h.attrs)
	}
	if len(h.groups) > 0 {
		clone.groups = make([]string, len(h.groups))
		copy(clone.groups, h.groups)
	}
	return clone
}

type kv struct {
	key   string
	value slog.Value
}

func dedupeKVsByKey(attrs []kv) []kv {
	if len(attrs) < 2 {
		return attrs
	}
	positions := make(map[string]int, len(attrs))
	deduped := make([]kv, 0, len(attrs))
	for _, attr := range attrs {
		if attr.key == "" {
			continue
		}
		if pos, ok := positions[attr.key]; ok {
			deduped[pos].value = attr.value
			continue
		}
		positions[attr.key] = len(deduped)
		deduped = append(deduped, attr)
	}
	return deduped
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	switch attr.Value.Kind() {
	case slog.KindGroup:
		values := attr.Value.Group()
		nextPrefix := prefix
		if attr.Key != "" {
			nextPrefix = appendPrefix(prefix, attr.Key)
		}
		flattenAttrs(dst, nextPrefix, values)
	default:
		key := attr.Key
		if len(prefix) > 0 {
			if key != "" {
				key = strings.Join(append(prefix, key), ".")
			} else {
				key = strings.Join(prefix, ".")
			}
		}
		if key == "" {
			key = attr.Key
		}
		*dst = append(*dst, kv{key: key, value: attr.Value})
	}
}

func appendPrefix(prefix []string, value string) []string {
	if len(prefix) == 0 {
		return []string{value}
	}
	out := make([]string, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = value
	return out
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
