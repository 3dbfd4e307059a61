// Package testsupport builds isolated configs, stub binaries, and history
// stores for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"ytharvest/internal/config"
)

// VersionOnlyYtDlp answers --version and nothing else.
const VersionOnlyYtDlp = "#!/bin/sh\necho 2026.09.01\nexit 0\n"

// ConfigOption adjusts a test config after the temp layout is in place.
type ConfigOption func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns defaults rooted in a fresh temp directory: state under
// base/state and harvests under base/out.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Output.Dir = filepath.Join(base, "out")
	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// BaseDir returns the temp root NewConfig created for cfg.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// WithHistoryDisabled turns off the run history database.
func WithHistoryDisabled() ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.History.Enabled = false
	}
}

// WithStubbedBinaries installs VersionOnlyYtDlp as yt-dlp.
func WithStubbedBinaries() ConfigOption {
	return WithStubYtDlp(VersionOnlyYtDlp)
}

// WithStubYtDlp writes script as base/bin/yt-dlp, points the provider at
// it, and puts base/bin first on PATH for the rest of the test.
func WithStubYtDlp(script string) ConfigOption {
	return func(t testing.TB, base string, cfg *config.Config) {
		t.Helper()
		binDir := filepath.Join(base, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", binDir, err)
		}
		target := filepath.Join(binDir, "yt-dlp")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			t.Fatalf("write stub yt-dlp: %v", err)
		}
		cfg.Provider.YtDlpBinary = target
		t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}
