package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"ytharvest/internal/deps"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("yt-dlp", statusError, "Not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "yt-dlp:", "[ERROR] Not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("yt-dlp", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "yt-dlp", Available: true, Command: "yt-dlp", Path: "/usr/bin/yt-dlp"},
		{Name: "ffprobe", Available: false, Optional: true, Detail: "not configured"},
		{Name: "other", Available: false},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[OK] found at /usr/bin/yt-dlp") {
		t.Fatalf("expected ready detail first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[WARN] not configured") {
		t.Fatalf("expected optional warning, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[ERROR] not available") {
		t.Fatalf("expected default error detail, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing dependencies:") || !strings.Contains(lines[3], "ffprobe, other") {
		t.Fatalf("expected missing dependencies summary, got %q", lines[3])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestStatusCommandReportsProvider(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "[OK] version 2026.09.01")
	requireContains(t, out, "Output directory:")
}

func TestTallyKind(t *testing.T) {
	tests := []struct {
		succeeded, failed int
		want              statusKind
	}{
		{3, 0, statusOK},
		{2, 1, statusWarn},
		{0, 2, statusError},
		{0, 0, statusOK},
	}
	for _, tt := range tests {
		if got := tallyKind(tt.succeeded, tt.failed); got != tt.want {
			t.Fatalf("tallyKind(%d, %d) = %v, want %v", tt.succeeded, tt.failed, got, tt.want)
		}
	}
}

func TestShouldColorizeRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if shouldColorize(os.Stdout) {
		t.Fatal("expected NO_COLOR to disable colour")
	}
}

func TestRenderTableTrimsAndFooter(t *testing.T) {
	columns := []column{rightColumn("#"), leftColumn("Input").trimmed(10)}
	got := renderTable(columns, [][]string{{"1", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}}, []string{"", "1 row"})
	if strings.Contains(got, "dQw4w9WgXcQ") {
		t.Fatalf("expected long input to be trimmed:\n%s", got)
	}
	requireContains(t, got, "https://ww")
	requireContains(t, got, "1 ROW")
}
