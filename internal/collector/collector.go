// Package collector walks a year range in week-long windows, querying a
// headline source for each window and normalizing what it returns.
package collector

import (
	"context"
	"time"

	"newsharvest/internal/config"
	"newsharvest/internal/logger"
	"newsharvest/internal/models"
)

// HeadlineSource returns the raw headlines for one query. An empty result
// covers both a quiet news day and any fetch failure.
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context, q models.HeadlineQuery) []models.RawHeadline
}

// Normalizer turns a raw headline into its normalized form.
type Normalizer interface {
	Process(raw string) string
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(raw string) string

// Process calls f(raw).
func (f NormalizerFunc) Process(raw string) string {
	return f(raw)
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Observer is notified of every window as soon as it is recorded.
type Observer interface {
	OnWindow(w models.CollectionWindow)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(w models.CollectionWindow)

// OnWindow calls f(w).
func (f ObserverFunc) OnWindow(w models.CollectionWindow) {
	f(w)
}

// Result holds the windows collected for one entity.
type Result struct {
	Entity  string
	Windows []models.CollectionWindow
}

// Empty counts the windows that ended without headlines.
func (r Result) Empty() int {
	n := 0

	for _, w := range r.Windows {
		if w.Failed() {
			n++
		}
	}

	return n
}

// Headlines counts all normalized headlines across windows.
func (r Result) Headlines() int {
	n := 0
	for _, w := range r.Windows {
		n += len(w.Headlines)
	}

	return n
}

// Collector drives the window walk for one or more entities.
type Collector struct {
	source     HeadlineSource
	normalizer Normalizer
	sleep      Sleeper
	log        *logger.Logger
	observers  []Observer
	policy     config.RetryPolicy
	limit      int
}

// Option configures a Collector.
type Option func(*Collector)

// WithSleeper replaces the retry wait.
func WithSleeper(s Sleeper) Option {
	return func(c *Collector) {
		c.sleep = s
	}
}

// WithLogger sets the logger used for window diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Collector) {
		c.log = l
	}
}

// WithObserver adds an observer for recorded windows.
func WithObserver(o Observer) Option {
	return func(c *Collector) {
		c.observers = append(c.observers, o)
	}
}

// WithResultLimit sets how many headlines are requested per window.
func WithResultLimit(n int) Option {
	return func(c *Collector) {
		c.limit = n
	}
}

// NewCollector creates a collector that queries source and normalizes
// results with n, retrying empty windows per policy.
func NewCollector(source HeadlineSource, n Normalizer, policy config.RetryPolicy, opts ...Option) *Collector {
	c := &Collector{
		source:     source,
		normalizer: n,
		sleep:      SleepContext,
		log:        logger.Discard(),
		policy:     policy,
		limit:      models.DefaultResultLimit,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect queries every window of years for entity, in chronological order.
// A window that stays empty after all attempts is recorded with no
// headlines and the walk moves on. If ctx is canceled the windows recorded
// so far are returned.
func (c *Collector) Collect(ctx context.Context, entity string, years YearRange) []models.CollectionWindow {
	spans := PlanWindows(years)
	windows := make([]models.CollectionWindow, 0, len(spans))

	for _, span := range spans {
		w, err := c.collectWindow(ctx, entity, span)
		if err != nil {
			c.log.Warn("collection interrupted",
				"entity", entity,
				"start", span.Start.Format(models.DateLayout),
				"error", err,
			)

			break
		}

		windows = append(windows, w)

		for _, o := range c.observers {
			o.OnWindow(w)
		}
	}

	return windows
}

// Run collects every entity in order. It stops early only when ctx is done.
func (c *Collector) Run(ctx context.Context, entities []string, years YearRange) []Result {
	results := make([]Result, 0, len(entities))

	for _, entity := range entities {
		if ctx.Err() != nil {
			break
		}

		c.log.Info("collecting headlines", "entity", entity, "from", years.First, "to", years.Last)

		r := Result{Entity: entity, Windows: c.Collect(ctx, entity, years)}
		results = append(results, r)

		c.log.Info("entity complete",
			"entity", entity,
			"windows", len(r.Windows),
			"empty", r.Empty(),
			"headlines", r.Headlines(),
		)
	}

	return results
}

func (c *Collector) maxAttempts() int {
	if c.policy.MaxAttempts < 1 {
		return 1
	}

	return c.policy.MaxAttempts
}

func (c *Collector) collectWindow(ctx context.Context, entity string, span Span) (models.CollectionWindow, error) {
	w := models.CollectionWindow{Start: span.Start, End: span.End, Entity: entity}
	log := c.log.With("entity", entity, "start", w.StartDate(), "end", w.EndDate())
	q := w.Query(c.limit)

	var raw []models.RawHeadline

	for attempt := 1; attempt <= c.maxAttempts(); attempt++ {
		if attempt > 1 {
			delay := c.policy.GetRetryDelay(attempt)
			log.Warn("no headlines, retrying window", "attempt", attempt, "delay", delay)

			if err := c.sleep(ctx, delay); err != nil {
				return w, err
			}
		}

		if err := ctx.Err(); err != nil {
			return w, err
		}

		w.Attempts = attempt

		raw = c.source.FetchHeadlines(ctx, q)
		if len(raw) > 0 {
			break
		}

		// A fetch cut short by cancellation looks empty; it is not a result.
		if err := ctx.Err(); err != nil {
			return w, err
		}
	}

	w.Headlines = make([]models.NormalizedHeadline, 0, len(raw))
	for _, h := range raw {
		w.Headlines = append(w.Headlines, c.normalizer.Process(h))
	}

	if len(w.Headlines) == 0 {
		w.Status = models.StatusCollectedEmpty
		log.Warn("window collected empty", "attempts", w.Attempts)

		return w, nil
	}

	w.Status = models.StatusCollected
	log.Debug("window collected", "headlines", len(w.Headlines), "attempts", w.Attempts)

	return w, nil
}
