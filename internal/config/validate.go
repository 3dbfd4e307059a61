package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateComments(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateBulk(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateProvider(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateComments() error {
	if c.Comments.MaxComments < 1 {
		return errors.New("comments.max_comments must be at least 1")
	}
	if c.Comments.RootCount < 1 {
		return errors.New("comments.root_count must be at least 1")
	}
	if !slices.Contains(SortModes, c.Comments.Sort) {
		return fmt.Errorf("comments.sort must be one of %s, got %q", strings.Join(SortModes, ", "), c.Comments.Sort)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(Formats, ", "), c.Output.Format)
	}
	return nil
}

func (c *Config) validateBulk() error {
	if c.Bulk.Workers < 1 || c.Bulk.Workers > maxWorkers {
		return fmt.Errorf("bulk.workers must be between 1 and %d", maxWorkers)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.Keywords && c.Analysis.KeywordCount < 1 {
		return errors.New("analysis.keyword_count must be positive when keywords are enabled")
	}
	return nil
}

func (c *Config) validateProvider() error {
	if c.Provider.PageSize < 1 {
		return errors.New("provider.page_size must be at least 1")
	}
	if c.Provider.RequestsPerSecond <= 0 {
		return errors.New("provider.requests_per_second must be positive")
	}
	if c.Provider.TimeoutSeconds < 0 {
		return errors.New("provider.timeout_seconds must be zero (no limit) or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
