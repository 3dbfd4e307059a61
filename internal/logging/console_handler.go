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
)

// consoleHandler writes one line per record:
//
//	15:04:05 INFO  [bulk] dQw4w9WgXcQ/writing: video written | roots=80 replies=312
//
// Component, video id, and stage move into the header. INFO and above show
// a curated field list; DEBUG shows every field.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	attrs     []kv
	groups    []string
	addSource bool
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]kv, len(h.attrs), len(h.attrs)+record.NumAttrs())
	copy(fields, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&fields, h.groups, attr)
		return true
	})
	fields = dedupeKVsByKey(fields)

	var component, videoID, stage string
	rest := make([]kv, 0, len(fields))
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			component = attrString(f.value)
		case FieldVideoID:
			videoID = attrString(f.value)
		case FieldStage:
			stage = attrString(f.value)
		default:
			rest = append(rest, f)
		}
	}

	var buf bytes.Buffer
	buf.Grow(128 + len(rest)*24)
	buf.WriteString(formatClock(record.Time))
	buf.WriteByte(' ')
	label := levelLabel(record.Level)
	buf.WriteString(label)
	buf.WriteString(strings.Repeat(" ", 5-len(label)))
	if component != "" {
		buf.WriteString(" [" + component + "]")
	}
	if subject := composeSubject(videoID, stage); subject != "" {
		buf.WriteString(" " + subject + ":")
	}
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}
	buf.WriteString(" " + message)

	if record.Level < slog.LevelInfo {
		writeFields(&buf, rest)
	} else {
		shown, hidden := selectInfoFields(rest)
		writeInfoFields(&buf, shown, hidden)
	}
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil && src.File != "" {
			buf.WriteString(" (" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + ")")
		}
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func writeFields(buf *bytes.Buffer, fields []kv) {
	if len(fields) == 0 {
		return
	}
	buf.WriteString(" |")
	for _, f := range fields {
		buf.WriteString(" " + f.key + "=" + formatValue(f.value))
	}
}

func writeInfoFields(buf *bytes.Buffer, fields []infoField, hidden int) {
	if len(fields) > 0 {
		buf.WriteString(" |")
		for _, f := range fields {
			buf.WriteString(" " + f.label + "=" + f.value)
		}
	}
	if hidden > 0 {
		buf.WriteString(" (+" + strconv.Itoa(hidden) + " hidden)")
	}
}

// composeSubject renders "dQw4w9WgXcQ/fetching" style subjects.
func composeSubject(videoID, stage string) string {
	videoID = strings.TrimSpace(videoID)
	stage = strings.TrimSpace(stage)
	switch {
	case videoID != "" && stage != "":
		return videoID + "/" + stage
	case videoID != "":
		return videoID
	default:
		return stage
	}
}

// WithAttrs flattens attrs once so Handle only walks the record's own attrs.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = append(make([]kv, 0, len(h.attrs)+len(attrs)), h.attrs...)
	for _, attr := range attrs {
		flattenAttr(&next.attrs, h.groups, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

type kv struct {
	key   string
	value slog.Value
}

// dedupeKVsByKey keeps the first position of each key with its last value.
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

// flattenAttr appends attr to dst, expanding groups into dotted keys.
func flattenAttr(dst *[]kv, groups []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		inner := groups
		if attr.Key != "" {
			inner = append(append([]string(nil), groups...), attr.Key)
		}
		for _, member := range attr.Value.Group() {
			flattenAttr(dst, inner, member)
		}
		return
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(append(append([]string(nil), groups...), key), ".")
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}
