package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"ytharvest/internal/analysis"
	"ytharvest/internal/bulk"
	"ytharvest/internal/comments"
	"ytharvest/internal/config"
	"ytharvest/internal/harvest"
	"ytharvest/internal/history"
	"ytharvest/internal/logging"
	"ytharvest/internal/preflight"
	"ytharvest/internal/transcript"
	"ytharvest/internal/ytdlp"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// logger builds the run logger. Console output goes to the command's stderr
// so stdout stays reserved for results.
func (c *commandContext) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	verbose := c.verboseFlag != nil && *c.verboseFlag
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr(), verbose)
}

// newHarvester wires the yt-dlp client, caption fetcher, and pipeline
// options from cfg. Both providers share one limiter.
func newHarvester(cfg *config.Config, logger *slog.Logger) (*harvest.Harvester, error) {
	sortMode, err := comments.ParseSortMode(cfg.Comments.Sort)
	if err != nil {
		return nil, err
	}
	limiter := newLimiter(cfg.Provider.RequestsPerSecond)
	client, err := ytdlp.New(cfg.Provider.YtDlpBinary,
		ytdlp.WithLimiter(limiter),
		ytdlp.WithPageSize(cfg.Provider.PageSize),
		ytdlp.WithMaxComments(cfg.Comments.MaxComments),
		ytdlp.WithTimeout(time.Duration(cfg.Provider.TimeoutSeconds)*time.Second),
		ytdlp.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	fetcher := transcript.NewFetcher(cfg.Provider.TranscriptLanguages,
		transcript.WithLimiter(limiter),
		transcript.WithLogger(logger),
	)
	return harvest.New(client, client, fetcher, harvest.Options{
		RootCount:   cfg.Comments.RootCount,
		MaxComments: cfg.Comments.MaxComments,
		Sort:        sortMode,
		Analysis: analysis.Options{
			Sentiment:    cfg.Analysis.Sentiment,
			Keywords:     cfg.Analysis.Keywords,
			KeywordCount: cfg.Analysis.KeywordCount,
		},
	}, logger), nil
}

// requireProvider fails fast when yt-dlp cannot be found.
func requireProvider(cfg *config.Config) error {
	var results []preflight.Result
	for _, status := range preflight.CheckSystemDeps(cfg) {
		results = append(results, preflight.Result{Name: status.Name, Passed: status.Available, Detail: status.Detail})
	}
	return preflight.Require(results)
}

func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

// recordRun stores summary in the history database when enabled. Failures
// are logged and never change the command's result.
func recordRun(ctx context.Context, cfg *config.Config, mode history.Mode, summary bulk.Summary, logger *slog.Logger) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
		return
	}
	defer store.Close()
	if err := store.Record(context.WithoutCancel(ctx), history.FromSummary(mode, summary)); err != nil {
		logging.WarnWithContext(logger, "history record failed", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
