package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytharvest/internal/config"
	"ytharvest/internal/testsupport"
)

// stubYtDlp answers --version, metadata probes, and comment dumps. Any URL
// containing deadvideo00 fails the way an unavailable video does.
const stubYtDlp = `#!/bin/sh
case "$*" in
*--version*) echo 2026.09.01; exit 0 ;;
esac
case "$*" in
*deadvideo00*) echo "ERROR: [youtube] deadvideo00: Video unavailable" >&2; exit 1 ;;
esac
case "$*" in
*--write-comments*)
cat <<'JSON'
{"id":"x","comments":[
 {"id":"c1","text":"First!","author":"@alice","like_count":1250,"timestamp":1700000000,"parent":"root"},
 {"id":"c2","text":"reply here","author":"bob","like_count":1,"timestamp":1700000100,"parent":"c1"},
 {"id":"c3","text":"second root","author":"carol","like_count":3,"timestamp":1700000200,"parent":"root"}
]}
JSON
;;
*)
cat <<'JSON'
{"id":"x","title":"Stub Video","channel":"Stub Channel","view_count":1250,"duration":61,"upload_date":"20240102","tags":["go"],"comment_count":3}
JSON
;;
esac
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithStubYtDlp(stubYtDlp)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(base, "ytharvest.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[output]
format = %q
dir = %q

[provider]
ytdlp_binary = %q
requests_per_second = 50

[paths]
state_dir = %q

[history]
enabled = %t

[logging]
level = "error"
`,
		cfg.Output.Format,
		cfg.Output.Dir,
		cfg.Provider.YtDlpBinary,
		cfg.Paths.StateDir,
		cfg.History.Enabled,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeInputs(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "videos.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write inputs: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
