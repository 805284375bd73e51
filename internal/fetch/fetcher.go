package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	apierrors "mdscli/internal/errors"
)

const maxResponseSize = 64 * 1024 * 1024

// ByteFetcher retrieves a publication as raw bytes.
type ByteFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the production ByteFetcher.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPFetcher creates a fetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "http_fetcher")),
	}
}

// Fetch downloads a single URL. Non-200 statuses are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// FetchFirst formats each URL pattern with the end year and tries them in
// order, returning the first successful payload. A download error is
// returned only after every pattern is exhausted.
func FetchFirst(ctx context.Context, fetcher ByteFetcher, source string, endYear int, patterns []string, logger *slog.Logger) ([]byte, error) {
	var lastErr error
	for _, pattern := range patterns {
		url := fmt.Sprintf(pattern, endYear)
		data, err := fetcher.Fetch(ctx, url)
		if err == nil && len(data) > 0 {
			logger.Debug("source fetched",
				slog.String("source", source),
				slog.Int("end_year", endYear),
				slog.String("url", url),
				slog.Int("bytes", len(data)))
			return data, nil
		}
		if err == nil {
			err = fmt.Errorf("empty response")
		}
		logger.Debug("url pattern failed",
			slog.String("source", source),
			slog.String("url", url),
			slog.String("error", err.Error()))
		lastErr = err
	}
	return nil, apierrors.NewDownloadError(source, endYear, lastErr)
}
