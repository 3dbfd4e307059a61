package config

import (
	"fmt"
	"os"
	"strings"
)

// Normalize re-applies trimming, alias folding, and path expansion. Commands
// call it after layering flag overrides onto a loaded Config.
func (c *Config) Normalize() error {
	return c.normalize()
}

func (c *Config) normalize() error {
	c.normalizeComments()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeProvider()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeComments() {
	switch strings.ToLower(strings.TrimSpace(c.Comments.Sort)) {
	case "", "popularity", "by_popularity", "top":
		c.Comments.Sort = "popularity"
	case "chronological", "newest":
		c.Comments.Sort = "chronological"
	default:
		c.Comments.Sort = strings.ToLower(strings.TrimSpace(c.Comments.Sort))
	}
}

func (c *Config) normalizeOutput() error {
	format := strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch format {
	case "", "text":
		format = defaultFormat
	}
	c.Output.Format = format

	dir := strings.TrimSpace(c.Output.Dir)
	if dir == "" {
		dir = defaultOutputDir
	}
	var err error
	if c.Output.Dir, err = expandPath(dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeProvider() {
	c.Provider.YtDlpBinary = strings.TrimSpace(c.Provider.YtDlpBinary)
	if value, ok := os.LookupEnv("YTHARVEST_YTDLP"); ok && strings.TrimSpace(value) != "" {
		c.Provider.YtDlpBinary = strings.TrimSpace(value)
	}
	if c.Provider.YtDlpBinary == "" {
		c.Provider.YtDlpBinary = defaultYtDlpBinary
	}
	langs := c.Provider.TranscriptLanguages[:0]
	for _, lang := range c.Provider.TranscriptLanguages {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	c.Provider.TranscriptLanguages = langs
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
