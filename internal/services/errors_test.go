package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ytharvest/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "fetching", "yt-dlp", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"fetching", "yt-dlp", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToFatalMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrProviderFatal) {
		t.Fatalf("expected fatal marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{context.Canceled, "cancelled"},
		{fmt.Errorf("outer: %w", context.DeadlineExceeded), "timeout"},
		{services.Wrap(services.ErrInvalidInput, "input", "", "bad id", nil), "invalid_input"},
		{services.Wrap(services.ErrOutputCollision, "writing", "", "", nil), "output_collision"},
		{services.Wrap(services.ErrIncompleteSource, "assembling", "", "", nil), "incomplete_source"},
		{services.Wrap(services.ErrFormatWrite, "writing", "", "", errors.New("disk full")), "write_failed"},
		{services.Wrap(services.ErrProviderTransient, "fetching", "", "", nil), "provider_transient"},
		{errors.New("mystery"), "provider"},
	}
	for _, tc := range cases {
		if got := services.Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
	if !services.IsTransient(services.Wrap(services.ErrProviderTransient, "", "", "", nil)) {
		t.Fatal("expected transient classification")
	}
}
