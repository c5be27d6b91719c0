package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"webrecon/internal/log"
)

// FetchResult is the part of an HTTP response the collectors consume.
type FetchResult struct {
	StatusCode int
	Body       string
}

// Fetcher retrieves a page. Implementations return *FetchError on failure.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*FetchResult, error)
}

type HTMLFetcher struct {
	client       *http.Client
	limiter      *rate.Limiter
	userAgent    string
	maxBodyBytes int64
}

// FetcherOption configures an HTMLFetcher.
type FetcherOption func(*HTMLFetcher)

// WithRateLimit caps outgoing requests per second across every fetch made
// by this fetcher. Zero or negative disables the limit.
func WithRateLimit(perSecond float64) FetcherOption {
	return func(f *HTMLFetcher) {
		if perSecond > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithUserAgent(ua string) FetcherOption {
	return func(f *HTMLFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodyBytes truncates response bodies beyond n bytes.
func WithMaxBodyBytes(n int64) FetcherOption {
	return func(f *HTMLFetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// NewHTMLFetcher returns a fetcher with the default redirect policy and the given request timeout.
func NewHTMLFetcher(timeout time.Duration, opts ...FetcherOption) *HTMLFetcher {
	f := &HTMLFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		maxBodyBytes: 10 << 20,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a single GET. There are no retries.
func (f *HTMLFetcher) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{URL: targetURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &FetchError{URL: targetURL, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Logger.Error("failed to fetch URL",
			zap.String("url", targetURL),
			zap.Error(err),
		)
		return nil, &FetchError{URL: targetURL, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Logger.Warn("unexpected status code",
			zap.String("url", targetURL),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, &FetchError{
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		log.Logger.Warn("failed to read response body",
			zap.String("url", targetURL),
			zap.Error(err),
		)
		return nil, &FetchError{URL: targetURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	log.Logger.Info("successfully fetched page",
		zap.String("url", targetURL),
		zap.Int("content_length", len(body)),
		zap.Int("status_code", resp.StatusCode),
	)

	return &FetchResult{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
