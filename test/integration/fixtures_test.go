package integration

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("..", "fixtures", name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}

	return content
}

// searchServer serves the results fixture for windows starting on one of
// hits, a 503 on the first request for windows in flaky, and the empty
// page otherwise. The roster fixture is served under /wiki/.
type searchServer struct {
	*httptest.Server

	hits     map[string]bool
	flaky    map[string]bool
	requests map[string]int
	agents   map[string]bool
	mu       sync.Mutex
}

func newSearchServer(t *testing.T, hits, flaky []string) *searchServer {
	t.Helper()

	results := readFixture(t, "results_page.html")
	empty := readFixture(t, "empty_page.html")
	roster := readFixture(t, "constituents.html")

	s := &searchServer{
		hits:     toSet(hits),
		flaky:    toSet(flaky),
		requests: make(map[string]int),
		agents:   make(map[string]bool),
	}

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/wiki/") {
			w.Write(roster)

			return
		}

		q := r.URL.Query().Get("q")
		start := afterDate(q)

		s.mu.Lock()
		s.requests[start]++
		n := s.requests[start]
		s.agents[r.Header.Get("User-Agent")] = true
		s.mu.Unlock()

		switch {
		case s.flaky[start] && n == 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case s.hits[start] || s.flaky[start]:
			w.Write(results)
		default:
			w.Write(empty)
		}
	}))

	t.Cleanup(s.Close)

	return s
}

func (s *searchServer) requestsFor(start string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests[start]
}

func afterDate(q string) string {
	for _, field := range strings.Fields(q) {
		if d, ok := strings.CutPrefix(field, "after:"); ok {
			return d
		}
	}

	return ""
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, i := range items {
		m[i] = true
	}

	return m
}
