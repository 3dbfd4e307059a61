package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ytharvest/internal/comments"
	"ytharvest/internal/logging"
	"ytharvest/internal/retry"
	"ytharvest/internal/services"
	"ytharvest/internal/videoid"
)

const (
	defaultPageSize    = 100
	defaultMaxComments = 20000
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLimiter shares a rate limiter across every invocation.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithPageSize sets how many comments each Fetch page carries.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithMaxComments bounds how many comments yt-dlp is asked to download.
func WithMaxComments(max int) Option {
	return func(c *Client) {
		if max > 0 {
			c.maxComments = max
		}
	}
}

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetry overrides the retry policy for transient failures.
func WithRetry(rc retry.Config) Option {
	return func(c *Client) {
		c.retry = rc
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary      string
	exec        Executor
	limiter     *rate.Limiter
	pageSize    int
	maxComments int
	timeout     time.Duration
	retry       retry.Config
	logger      *slog.Logger

	mu      sync.Mutex
	pending map[string][]comments.Comment
}

// New constructs a yt-dlp client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:      binary,
		exec:        commandExecutor{},
		pageSize:    defaultPageSize,
		maxComments: defaultMaxComments,
		retry:       retry.Default,
		logger:      logging.NewNop(),
		pending:     make(map[string][]comments.Comment),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "ytdlp")
	return client, nil
}

// Version reports the installed yt-dlp version.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "version", []string{"--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Probe fetches metadata and the caption listing for videoID.
func (c *Client) Probe(ctx context.Context, videoID string) (Probe, error) {
	args := []string{"--skip-download", "--dump-single-json", "--no-warnings", videoid.WatchURL(videoID)}
	payload, err := retry.Do(ctx, c.retry, func() ([]byte, error) {
		return c.run(ctx, "probe", args)
	})
	if err != nil {
		return Probe{}, err
	}
	var doc info
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Probe{}, services.Wrap(services.ErrProviderFatal, "fetching", "probe", "decode yt-dlp json", err)
	}
	return doc.probe(videoID), nil
}

// Fetch serves the comment dump for videoID in pages. The first call for a
// video downloads the whole dump; later calls page through it by offset.
func (c *Client) Fetch(ctx context.Context, videoID string, cursor comments.Cursor) (comments.Page, error) {
	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(string(cursor))
		if err != nil || n < 0 {
			return comments.Page{}, services.Wrap(services.ErrProviderFatal, "fetching", "comments", fmt.Sprintf("invalid cursor %q", cursor), err)
		}
		offset = n
	}

	records, err := c.records(ctx, videoID, offset == 0)
	if err != nil {
		return comments.Page{}, err
	}
	if offset > len(records) {
		offset = len(records)
	}
	end := offset + c.pageSize
	if end >= len(records) {
		c.Release(videoID)
		return comments.Page{Comments: records[offset:], Done: true}, nil
	}
	return comments.Page{Comments: records[offset:end], Next: comments.Cursor(strconv.Itoa(end))}, nil
}

// records returns the held dump for videoID, downloading it when fresh is
// set or nothing is held.
func (c *Client) records(ctx context.Context, videoID string, fresh bool) ([]comments.Comment, error) {
	c.mu.Lock()
	held, ok := c.pending[videoID]
	c.mu.Unlock()
	if ok && !fresh {
		return held, nil
	}

	args := []string{
		"--skip-download",
		"--write-comments",
		"--dump-single-json",
		"--no-warnings",
		"--extractor-args", fmt.Sprintf("youtube:max_comments=%d;comment_sort=top", c.maxComments),
		videoid.WatchURL(videoID),
	}
	payload, err := retry.Do(ctx, c.retry, func() ([]byte, error) {
		return c.run(ctx, "comments", args)
	})
	if err != nil {
		return nil, err
	}
	var doc info
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, services.Wrap(services.ErrProviderFatal, "fetching", "comments", "decode yt-dlp json", err)
	}
	records := doc.comments()
	c.logger.Debug("comment dump decoded", logging.String(logging.FieldVideoID, videoID), logging.Int("records", len(records)))

	c.mu.Lock()
	c.pending[videoID] = records
	c.mu.Unlock()
	return records, nil
}

// Release drops the held dump for videoID.
func (c *Client) Release(videoID string) {
	c.mu.Lock()
	delete(c.pending, videoID)
	c.mu.Unlock()
}

// run performs one rate-limited invocation and classifies its failure.
func (c *Client) run(ctx context.Context, op string, args []string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	c.logger.Debug("running yt-dlp", logging.String("op", op), logging.Any("args", args))
	out, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		if ctx.Err() == nil && runCtx.Err() != nil {
			return nil, services.Wrap(services.ErrProviderTransient, "fetching", op, "yt-dlp timed out", runCtx.Err())
		}
		return nil, classify(ctx, op, out, err)
	}
	c.logger.Debug("yt-dlp finished", logging.String("op", op), logging.Duration("elapsed", time.Since(start)), logging.Int("bytes", len(out.Stdout)))
	return out.Stdout, nil
}
