package crawler

import "math/rand"

// UserAgentPicker chooses the User-Agent header for one request.
type UserAgentPicker interface {
	UserAgent() string
}

// RandomUserAgents picks uniformly from a fixed pool on every call.
type RandomUserAgents struct {
	intN func(n int) int
	pool []string
}

// NewRandomUserAgents creates a picker over pool.
func NewRandomUserAgents(pool []string) *RandomUserAgents {
	return &RandomUserAgents{pool: append([]string(nil), pool...), intN: rand.Intn}
}

// UserAgent returns one entry of the pool, or "" when the pool is empty.
func (r *RandomUserAgents) UserAgent() string {
	if len(r.pool) == 0 {
		return ""
	}

	return r.pool[r.intN(len(r.pool))]
}

// FixedUserAgent always returns the same value.
type FixedUserAgent string

// UserAgent returns the fixed value.
func (f FixedUserAgent) UserAgent() string {
	return string(f)
}
