package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed sample_config.toml
var sampleConfig string

// Comments controls comment ingestion and display.
type Comments struct {
	// RootCount is the number of roots kept after ordering.
	RootCount int `toml:"root_count" yaml:"root_count"`
	// MaxComments is the ingestion ceiling on roots plus replies.
	MaxComments int    `toml:"max_comments" yaml:"max_comments"`
	Sort        string `toml:"sort" yaml:"sort"`
}

// Output controls where and how harvests are written.
type Output struct {
	Format string `toml:"format" yaml:"format"`
	Dir    string `toml:"dir" yaml:"dir"`
}

// Bulk controls the multi-video orchestrator.
type Bulk struct {
	Workers             int  `toml:"workers" yaml:"workers"`
	AllowPartialSuccess bool `toml:"allow_partial_success" yaml:"allow_partial_success"`
}

// Analysis toggles the transcript summary.
type Analysis struct {
	Sentiment    bool `toml:"sentiment" yaml:"sentiment"`
	Keywords     bool `toml:"keywords" yaml:"keywords"`
	KeywordCount int  `toml:"keyword_count" yaml:"keyword_count"`
}

// Provider configures the yt-dlp adapter and caption downloads.
type Provider struct {
	YtDlpBinary         string   `toml:"ytdlp_binary" yaml:"ytdlp_binary"`
	PageSize            int      `toml:"page_size" yaml:"page_size"`
	RequestsPerSecond   float64  `toml:"requests_per_second" yaml:"requests_per_second"`
	TimeoutSeconds      int      `toml:"timeout_seconds" yaml:"timeout_seconds"`
	TranscriptLanguages []string `toml:"transcript_languages" yaml:"transcript_languages"`
}

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir" yaml:"state_dir"`
}

// History controls the run history database.
type History struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
}

// Config encapsulates all configuration values for ytharvest.
type Config struct {
	Comments Comments `toml:"comments" yaml:"comments"`
	Output   Output   `toml:"output" yaml:"output"`
	Bulk     Bulk     `toml:"bulk" yaml:"bulk"`
	Analysis Analysis `toml:"analysis" yaml:"analysis"`
	Provider Provider `toml:"provider" yaml:"provider"`
	Paths    Paths    `toml:"paths" yaml:"paths"`
	History  History  `toml:"history" yaml:"history"`
	Logging  Logging  `toml:"logging" yaml:"logging"`
}

// legacyYAML mirrors the keys older config.yaml files used.
type legacyYAML struct {
	Comments struct {
		TopN        *int `yaml:"top_n"`
		MaxDownload *int `yaml:"max_download"`
	} `yaml:"comments"`
	Processing struct {
		Sentiment *bool `yaml:"sentiment"`
		Keywords  *bool `yaml:"keywords"`
	} `yaml:"processing"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := decode(resolvedPath, data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return err
		}
		var legacy legacyYAML
		if err := yaml.Unmarshal(data, &legacy); err != nil {
			return err
		}
		legacy.apply(cfg)
		return nil
	default:
		return toml.Unmarshal(data, cfg)
	}
}

func (l legacyYAML) apply(cfg *Config) {
	if l.Comments.TopN != nil {
		cfg.Comments.RootCount = *l.Comments.TopN
	}
	if l.Comments.MaxDownload != nil {
		cfg.Comments.MaxComments = *l.Comments.MaxDownload
	}
	if l.Processing.Sentiment != nil {
		cfg.Analysis.Sentiment = *l.Processing.Sentiment
	}
	if l.Processing.Keywords != nil {
		cfg.Analysis.Keywords = *l.Processing.Keywords
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	candidates := []string{defaultPath}
	for _, local := range []string{"ytharvest.toml", "config.yaml"} {
		abs, err := filepath.Abs(local)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, abs)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory used for logs and history.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.StateDir, err)
	}
	return nil
}

// LogPath returns the log file location inside the state directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "ytharvest.log")
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// Sample returns the annotated sample configuration.
func Sample() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
