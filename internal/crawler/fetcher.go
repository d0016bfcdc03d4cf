package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Page is a fetched response: status code plus raw markup.
type Page struct {
	Body       []byte
	StatusCode int
}

// OK reports whether the page was served with 200.
func (p *Page) OK() bool {
	return p != nil && p.StatusCode == http.StatusOK
}

// Fetcher performs one GET of url with the given headers.
// Non-200 responses are returned as pages, not errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string, header http.Header) (*Page, error)
}

// HTTPFetcher fetches pages over net/http, spacing requests with a rate limiter.
type HTTPFetcher struct {
	client       *http.Client
	limiter      *rate.Limiter
	bufferSizeKb int
}

// NewHTTPFetcher creates a fetcher with the given request timeout, request
// rate and burst. A zero rate disables limiting.
func NewHTTPFetcher(timeout time.Duration, requestsPerSecond float64, burst, bufferSizeKb int) *HTTPFetcher {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	if burst < 1 {
		burst = 1
	}

	if bufferSizeKb <= 0 {
		bufferSizeKb = 1024
	}

	return &HTTPFetcher{
		client:       &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(limit, burst),
		bufferSizeKb: bufferSizeKb,
	}
}

// Fetch issues a single GET request. The body is read up to the buffer limit.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, header http.Header) (*Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// bufferSizeKb is in KB, convert to bytes
	limit := int64(f.bufferSizeKb) * 1024

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Page{StatusCode: resp.StatusCode, Body: body}, nil
}
