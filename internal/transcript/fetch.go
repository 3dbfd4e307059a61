package transcript

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"ytharvest/internal/logging"
	"ytharvest/internal/retry"
	"ytharvest/internal/services"
)

const maxCaptionBytes = 8 << 20

// Fetcher downloads and cleans caption tracks.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	languages []string
	retry     retry.Config
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client (primarily for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithLimiter shares a provider rate limiter with the fetcher.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = limiter
	}
}

// WithRetry overrides the retry policy.
func WithRetry(rc retry.Config) Option {
	return func(f *Fetcher) {
		f.retry = rc
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher constructs a Fetcher preferring langs in order.
func NewFetcher(langs []string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		languages: append([]string(nil), langs...),
		retry:     retry.Default,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch picks a track from tracks and returns its merged sentences. An empty
// result with a nil error means no usable track was listed.
func (f *Fetcher) Fetch(ctx context.Context, tracks []Track) ([]string, error) {
	track, ok := Pick(tracks, f.languages)
	if !ok {
		f.logger.Debug("no usable caption track", logging.Int("listed", len(tracks)))
		return nil, nil
	}
	body, err := f.download(ctx, track.URL)
	if err != nil {
		return nil, services.Wrap(markerFor(err), "fetching", "transcript download", track.Language, err)
	}
	sentences := MergeFragments(CleanLines(body, track.Ext))
	f.logger.Debug("transcript downloaded",
		logging.String("language", track.Language),
		logging.Bool("automatic", track.Automatic),
		logging.Int("sentences", len(sentences)),
	)
	return sentences, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	resp, err := retry.HTTP(ctx, f.retry, func() (*http.Response, error) {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		return f.client.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
}

func markerFor(err error) error {
	if retry.Retryable(err) {
		return services.ErrProviderTransient
	}
	return services.ErrProviderFatal
}
