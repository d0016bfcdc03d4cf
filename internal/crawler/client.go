// Package crawler fetches search result pages and extracts raw headlines.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"newsharvest/internal/config"
	"newsharvest/internal/logger"
	"newsharvest/internal/models"
)

// Adapter turns a HeadlineQuery into one page fetch and the headlines on it.
// Every failure mode collapses to an empty result.
type Adapter struct {
	fetcher  Fetcher
	agents   UserAgentPicker
	log      *logger.Logger
	attempts *AttemptLog
	now      func() time.Time
	baseURL  string
	selector string
	locale   Locale
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithUserAgents replaces the User-Agent picker.
func WithUserAgents(p UserAgentPicker) AdapterOption {
	return func(a *Adapter) {
		a.agents = p
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l *logger.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = l
	}
}

// WithAttemptLog records every fetch into log.
func WithAttemptLog(log *AttemptLog) AdapterOption {
	return func(a *Adapter) {
		a.attempts = log
	}
}

// NewAdapter creates an adapter for the search source described by cfg.
func NewAdapter(fetcher Fetcher, cfg config.SourceConfig, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		fetcher:  fetcher,
		agents:   NewRandomUserAgents(cfg.UserAgents),
		log:      logger.Discard(),
		attempts: NewAttemptLog(),
		now:      time.Now,
		baseURL:  cfg.BaseURL,
		selector: cfg.Selector,
		locale: Locale{
			Language: cfg.Language,
			Country:  cfg.Country,
			Edition:  cfg.Edition,
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NewAdapterFromConfig wires an HTTPFetcher with the configured rate limit
// and request timeout.
func NewAdapterFromConfig(cfg *config.Config, opts ...AdapterOption) *Adapter {
	fetcher := NewHTTPFetcher(
		cfg.Collector.Retry.GetTimeout(),
		cfg.Source.RequestsPerSecond,
		cfg.Source.Burst,
		cfg.Source.BufferSizeKb,
	)

	return NewAdapter(fetcher, cfg.Source, opts...)
}

// Attempts returns the log of fetches made by this adapter.
func (a *Adapter) Attempts() *AttemptLog {
	return a.attempts
}

// FetchHeadlines performs one fetch for q and returns up to q.Limit()
// headlines in document order. Transport errors, non-200 responses and
// unparsable markup all yield an empty slice.
func (a *Adapter) FetchHeadlines(ctx context.Context, q models.HeadlineQuery) []models.RawHeadline {
	target := BuildSearchURL(a.baseURL, q, a.locale)

	log := a.log.With("entity", q.Entity(), "start", q.StartDate(), "end", q.EndDate())
	log.Debug("fetching headlines", "url", target)

	header := http.Header{}
	if ua := a.agents.UserAgent(); ua != "" {
		header.Set("User-Agent", ua)
	}

	started := a.now()
	page, err := a.fetcher.Fetch(ctx, target, header)
	result := AttemptResult{Timestamp: started, URL: target, Duration: a.now().Sub(started)}

	if err != nil {
		result.Error = err.Error()
		a.attempts.Record(result)
		log.Warn("fetch failed", "error", err)

		return []models.RawHeadline{}
	}

	result.StatusCode = page.StatusCode

	if !page.OK() {
		result.Error = fmt.Sprintf("%v: %d", ErrUnexpectedStatusCode, page.StatusCode)
		a.attempts.Record(result)
		log.Warn("response code not 200", "status", page.StatusCode)

		return []models.RawHeadline{}
	}

	headlines, err := ExtractHeadlines(page.Body, a.selector, q.Limit())
	if err != nil {
		result.Error = err.Error()
		a.attempts.Record(result)
		log.Warn("failed to extract headlines", "error", err)

		return []models.RawHeadline{}
	}

	result.Success = true
	result.Headlines = len(headlines)
	a.attempts.Record(result)
	log.Debug("fetched headlines", "count", len(headlines))

	if headlines == nil {
		return []models.RawHeadline{}
	}

	return headlines
}
