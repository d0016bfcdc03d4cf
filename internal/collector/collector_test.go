package collector

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"newsharvest/internal/config"
	"newsharvest/internal/models"
	"newsharvest/internal/normalizer"
)

// scriptedSource answers each query from a function of the query and the
// number of times that window has been asked for.
type scriptedSource struct {
	respond func(q models.HeadlineQuery, call int) []models.RawHeadline
	calls   map[string]int
	queries []models.HeadlineQuery
}

func newScriptedSource(respond func(q models.HeadlineQuery, call int) []models.RawHeadline) *scriptedSource {
	return &scriptedSource{respond: respond, calls: make(map[string]int)}
}

func (s *scriptedSource) FetchHeadlines(_ context.Context, q models.HeadlineQuery) []models.RawHeadline {
	s.calls[q.StartDate()]++
	s.queries = append(s.queries, q)

	return s.respond(q, s.calls[q.StartDate()])
}

// recordingSleeper records requested delays without waiting.
type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)

	return ctx.Err()
}

var lower = NormalizerFunc(strings.ToLower)

var year2021 = YearRange{First: 2021, Last: 2021}

func TestCollect_EndToEnd(t *testing.T) {
	src := newScriptedSource(func(q models.HeadlineQuery, _ int) []models.RawHeadline {
		if q.StartDate() == "2021-02-01" {
			return []models.RawHeadline{"Acme Corp stock up 5% today!"}
		}

		return []models.RawHeadline{"filler"}
	})

	c := NewCollector(src, normalizer.NewProcessor(), config.Default().Collector.Retry,
		WithSleeper((&recordingSleeper{}).sleep))

	windows := c.Collect(context.Background(), "Acme Corp", year2021)

	var feb models.CollectionWindow

	for _, w := range windows {
		if w.StartDate() == "2021-02-01" {
			feb = w
		}
	}

	want := []string{"acme corp stock up five percent today"}
	if !reflect.DeepEqual(feb.Headlines, want) {
		t.Errorf("headlines = %q, want %q", feb.Headlines, want)
	}

	if feb.EndDate() != "2021-02-07" || feb.Status != models.StatusCollected {
		t.Errorf("window = %s..%s %s", feb.StartDate(), feb.EndDate(), feb.Status)
	}

	q := src.queries[5]
	if q.Entity() != "Acme Corp" || q.StartDate() != "2021-02-01" || q.EndDate() != "2021-02-07" || q.Limit() != 50 {
		t.Errorf("query = %s %s..%s limit %d", q.Entity(), q.StartDate(), q.EndDate(), q.Limit())
	}
}

func TestCollect_RetryOnce(t *testing.T) {
	src := newScriptedSource(func(q models.HeadlineQuery, call int) []models.RawHeadline {
		if q.StartDate() == "2021-02-01" && call == 1 {
			return nil
		}

		return []models.RawHeadline{"Acme wins big"}
	})

	sleeper := &recordingSleeper{}
	c := NewCollector(src, normalizer.NewProcessor(), config.Default().Collector.Retry,
		WithSleeper(sleeper.sleep))

	windows := c.Collect(context.Background(), "Acme Corp", year2021)

	if len(windows) != 59 {
		t.Fatalf("len(windows) = %d, want 59", len(windows))
	}

	seen := make(map[string]bool)
	for _, w := range windows {
		if seen[w.StartDate()] {
			t.Fatalf("duplicate window %s", w.StartDate())
		}

		seen[w.StartDate()] = true

		if w.StartDate() == "2021-02-01" {
			if !reflect.DeepEqual(w.Headlines, []string{"acme win big"}) {
				t.Errorf("headlines = %q, want [acme win big]", w.Headlines)
			}

			if w.Attempts != 2 {
				t.Errorf("Attempts = %d, want 2", w.Attempts)
			}
		}
	}

	if len(sleeper.delays) != 1 || sleeper.delays[0] != 5*time.Minute {
		t.Errorf("delays = %v, want [5m0s]", sleeper.delays)
	}

	if src.calls["2021-02-01"] != 2 {
		t.Errorf("calls for retried window = %d, want 2", src.calls["2021-02-01"])
	}
}

func TestCollect_PermanentFailure(t *testing.T) {
	src := newScriptedSource(func(models.HeadlineQuery, int) []models.RawHeadline {
		return []models.RawHeadline{}
	})

	sleeper := &recordingSleeper{}
	c := NewCollector(src, lower, config.Default().Collector.Retry, WithSleeper(sleeper.sleep))

	windows := c.Collect(context.Background(), "Acme Corp", year2021)

	if len(windows) != 59 {
		t.Fatalf("len(windows) = %d, want 59", len(windows))
	}

	for _, w := range windows {
		if w.Status != models.StatusCollectedEmpty || len(w.Headlines) != 0 || w.Attempts != 2 {
			t.Fatalf("window %s = %s with %d headlines after %d attempts", w.StartDate(), w.Status, len(w.Headlines), w.Attempts)
		}
	}

	if len(src.queries) != 2*59 {
		t.Errorf("queries = %d, want %d", len(src.queries), 2*59)
	}

	if len(sleeper.delays) != 59 {
		t.Errorf("sleeps = %d, want 59", len(sleeper.delays))
	}
}

func TestCollect_RetryPolicy(t *testing.T) {
	tests := []struct {
		name       string
		policy     config.RetryPolicy
		wantCalls  int
		wantDelays []time.Duration
	}{
		{
			name:       "single attempt",
			policy:     config.RetryPolicy{MaxAttempts: 1, InitialDelayMs: 1000, BackoffMultiplier: 1},
			wantCalls:  1,
			wantDelays: nil,
		},
		{
			name:       "backoff",
			policy:     config.RetryPolicy{MaxAttempts: 4, InitialDelayMs: 1000, MaxDelayMs: 5000, BackoffMultiplier: 2},
			wantCalls:  4,
			wantDelays: []time.Duration{2 * time.Second, 4 * time.Second, 5 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newScriptedSource(func(models.HeadlineQuery, int) []models.RawHeadline { return nil })
			sleeper := &recordingSleeper{}
			c := NewCollector(src, lower, tt.policy, WithSleeper(sleeper.sleep))

			c.collectWindow(context.Background(), "Acme", MonthWindows(2021, time.March)[0])

			if src.calls["2021-03-01"] != tt.wantCalls {
				t.Errorf("calls = %d, want %d", src.calls["2021-03-01"], tt.wantCalls)
			}

			if !reflect.DeepEqual(sleeper.delays, tt.wantDelays) {
				t.Errorf("delays = %v, want %v", sleeper.delays, tt.wantDelays)
			}
		})
	}
}

func TestCollect_ObserverOrder(t *testing.T) {
	src := newScriptedSource(func(q models.HeadlineQuery, _ int) []models.RawHeadline {
		return []models.RawHeadline{q.StartDate()}
	})

	var seen []string

	c := NewCollector(src, lower, config.Default().Collector.Retry,
		WithObserver(ObserverFunc(func(w models.CollectionWindow) {
			seen = append(seen, w.StartDate())
		})))

	windows := c.Collect(context.Background(), "Acme", YearRange{First: 2022, Last: 2023})

	if len(seen) != len(windows) {
		t.Fatalf("observer saw %d windows, collector returned %d", len(seen), len(windows))
	}

	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("window %s observed after %s", seen[i], seen[i-1])
		}
	}
}

func TestCollect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := newScriptedSource(func(q models.HeadlineQuery, _ int) []models.RawHeadline {
		if q.StartDate() == "2021-01-15" {
			return nil
		}

		return []models.RawHeadline{"headline"}
	})

	sleeper := func(context.Context, time.Duration) error {
		cancel()

		return context.Canceled
	}

	c := NewCollector(src, lower, config.Default().Collector.Retry, WithSleeper(sleeper))

	windows := c.Collect(ctx, "Acme", year2021)
	if len(windows) != 2 {
		t.Fatalf("len(windows) = %d, want 2", len(windows))
	}

	if windows[1].StartDate() != "2021-01-08" {
		t.Errorf("last window = %s, want 2021-01-08", windows[1].StartDate())
	}
}

func TestCollect_CanceledDuringFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := newScriptedSource(func(q models.HeadlineQuery, _ int) []models.RawHeadline {
		if q.StartDate() == "2021-01-08" {
			cancel()

			return nil
		}

		return []models.RawHeadline{"headline"}
	})

	var observed []string

	policy := config.RetryPolicy{MaxAttempts: 1}
	c := NewCollector(src, lower, policy,
		WithSleeper((&recordingSleeper{}).sleep),
		WithObserver(ObserverFunc(func(w models.CollectionWindow) {
			observed = append(observed, w.StartDate())
		})))

	windows := c.Collect(ctx, "Acme", year2021)
	if len(windows) != 1 || windows[0].StartDate() != "2021-01-01" {
		t.Fatalf("windows = %v, want only 2021-01-01", windows)
	}

	if !reflect.DeepEqual(observed, []string{"2021-01-01"}) {
		t.Errorf("observed = %v, want [2021-01-01]", observed)
	}

	if _, err := c.collectWindow(ctx, "Acme", MonthWindows(2021, time.January)[1]); err == nil {
		t.Error("collectWindow on a canceled context returned no error")
	}
}

func TestRun_EntitiesInOrder(t *testing.T) {
	src := newScriptedSource(func(q models.HeadlineQuery, _ int) []models.RawHeadline {
		if q.Entity() == "Beta" {
			return nil
		}

		return []models.RawHeadline{"A", "B"}
	})

	policy := config.RetryPolicy{MaxAttempts: 1}
	c := NewCollector(src, lower, policy, WithResultLimit(10))

	results := c.Run(context.Background(), []string{"Alpha", "Beta"}, YearRange{First: 2021, Last: 2021})

	if len(results) != 2 || results[0].Entity != "Alpha" || results[1].Entity != "Beta" {
		t.Fatalf("results = %+v", results)
	}

	if results[0].Headlines() != 2*59 || results[0].Empty() != 0 {
		t.Errorf("Alpha headlines = %d empty = %d", results[0].Headlines(), results[0].Empty())
	}

	if results[1].Empty() != 59 {
		t.Errorf("Beta empty = %d, want 59", results[1].Empty())
	}

	if src.queries[0].Limit() != 10 {
		t.Errorf("limit = %d, want 10", src.queries[0].Limit())
	}
}

func TestSleepContext(t *testing.T) {
	if err := SleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("SleepContext = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := SleepContext(ctx, time.Hour); err == nil {
		t.Error("SleepContext on canceled context returned nil")
	}
}
