package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when both sides are nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newTeeHandler(inner, nil); h != inner {
		t.Fatal("expected console handler to be returned unwrapped")
	}
	if h := newTeeHandler(nil, inner); h != inner {
		t.Fatal("expected file handler to be returned unwrapped")
	}
}

func TestTeeHandlerRoutesByLevel(t *testing.T) {
	var console, file bytes.Buffer
	h := newTeeHandler(
		slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be enabled through the file side")
	}

	logger := slog.New(h)
	logger.Debug("comment page fetched")
	if console.Len() != 0 {
		t.Fatalf("console should not receive debug output: %s", console.String())
	}
	if file.Len() == 0 {
		t.Fatal("file should receive debug output")
	}

	logger.Warn("transcript unavailable")
	if !bytes.Contains(console.Bytes(), []byte("transcript unavailable")) {
		t.Fatal("console should receive warnings")
	}
}

func TestTeeHandlerWithAttrsPropagates(t *testing.T) {
	var a, b bytes.Buffer
	h := newTeeHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))
	slog.New(h.WithAttrs([]slog.Attr{slog.String(FieldVideoID, "abcdefghijk")})).Info("done")
	for name, buf := range map[string]*bytes.Buffer{"console": &a, "file": &b} {
		if !bytes.Contains(buf.Bytes(), []byte(`"video_id":"abcdefghijk"`)) {
			t.Fatalf("%s side missing attribute: %s", name, buf.String())
		}
	}
}
