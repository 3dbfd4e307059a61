package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ytharvest/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "ytharvest", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Comments.RootCount != 80 || cfg.Comments.MaxComments != 20000 {
		t.Fatalf("unexpected comment defaults: %+v", cfg.Comments)
	}
	if cfg.Comments.Sort != "popularity" || cfg.Output.Format != "txt" {
		t.Fatalf("unexpected enum defaults: sort=%q format=%q", cfg.Comments.Sort, cfg.Output.Format)
	}
	if cfg.Bulk.Workers != 5 || cfg.Bulk.AllowPartialSuccess {
		t.Fatalf("unexpected bulk defaults: %+v", cfg.Bulk)
	}
	wantState := filepath.Join(tempHome, ".local", "share", "ytharvest")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
	if !filepath.IsAbs(cfg.Output.Dir) {
		t.Fatalf("expected absolute output dir, got %q", cfg.Output.Dir)
	}
}

func TestLoadTOMLNormalizesValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[comments]
root_count = 10
sort = " By_Popularity "

[output]
format = "TEXT"
dir = "~/harvests"

[bulk]
workers = 3

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Comments.RootCount != 10 || cfg.Comments.MaxComments != 20000 {
		t.Fatalf("unexpected comments: %+v", cfg.Comments)
	}
	if cfg.Comments.Sort != "popularity" {
		t.Fatalf("expected sort alias folded, got %q", cfg.Comments.Sort)
	}
	if cfg.Output.Format != "txt" {
		t.Fatalf("expected text alias folded to txt, got %q", cfg.Output.Format)
	}
	home, _ := os.UserHomeDir()
	if cfg.Output.Dir != filepath.Join(home, "harvests") {
		t.Fatalf("expected expanded output dir, got %q", cfg.Output.Dir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadLegacyYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
comments:
  top_n: 25
  max_download: 500
output:
  format: json
processing:
  sentiment: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Comments.RootCount != 25 || cfg.Comments.MaxComments != 500 {
		t.Fatalf("legacy comment keys not applied: %+v", cfg.Comments)
	}
	if cfg.Output.Format != "json" {
		t.Fatalf("unexpected format: %q", cfg.Output.Format)
	}
	if cfg.Analysis.Sentiment || !cfg.Analysis.Keywords {
		t.Fatalf("unexpected analysis toggles: %+v", cfg.Analysis)
	}
}

func TestLoadPicksUpProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "ytharvest.toml"), []byte("[bulk]\nworkers = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "ytharvest.toml" || cfg.Bulk.Workers != 2 {
		t.Fatalf("project file not used: resolved=%q exists=%v workers=%d", resolved, exists, cfg.Bulk.Workers)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero ceiling", func(c *config.Config) { c.Comments.MaxComments = 0 }, "max_comments"},
		{"zero roots", func(c *config.Config) { c.Comments.RootCount = 0 }, "root_count"},
		{"bad sort", func(c *config.Config) { c.Comments.Sort = "random" }, "comments.sort"},
		{"bad format", func(c *config.Config) { c.Output.Format = "xml" }, "output.format"},
		{"no workers", func(c *config.Config) { c.Bulk.Workers = 0 }, "bulk.workers"},
		{"too many workers", func(c *config.Config) { c.Bulk.Workers = 1000 }, "bulk.workers"},
		{"zero rate", func(c *config.Config) { c.Provider.RequestsPerSecond = 0 }, "requests_per_second"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestProviderBinaryEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YTHARVEST_YTDLP", "/opt/bin/yt-dlp")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Provider.YtDlpBinary != "/opt/bin/yt-dlp" {
		t.Fatalf("expected env override, got %q", cfg.Provider.YtDlpBinary)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var parsed config.Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	def := config.Default()
	if parsed.Comments != def.Comments || parsed.Bulk != def.Bulk || parsed.Logging != def.Logging {
		t.Fatalf("sample drifted from defaults: %+v", parsed)
	}
}
