// Package models defines data structures shared by the crawler, normalizer and collector.
package models

import "time"

// DateLayout is the calendar date format used in queries and dataset rows.
const DateLayout = "2006-01-02"

// DefaultResultLimit is the number of headlines requested per query when none is given.
const DefaultResultLimit = 50

// RawHeadline is headline text exactly as extracted from a result page.
type RawHeadline = string

// NormalizedHeadline is a space-joined sequence of normalized tokens.
type NormalizedHeadline = string

// HeadlineQuery describes one search for an entity's headlines.
// Build it with NewHeadlineQuery so the end-date default is applied.
type HeadlineQuery struct {
	start  *time.Time
	end    *time.Time
	entity string
	limit  int
}

// NewHeadlineQuery returns a query for entity between start and end.
// A nil end with a non-nil start defaults to start plus one day.
// A non-positive limit falls back to DefaultResultLimit.
func NewHeadlineQuery(entity string, start, end *time.Time, limit int) HeadlineQuery {
	q := HeadlineQuery{entity: entity, limit: limit}
	if q.limit <= 0 {
		q.limit = DefaultResultLimit
	}

	if start != nil {
		s := truncateDay(*start)
		q.start = &s

		if end == nil {
			e := s.AddDate(0, 0, 1)
			q.end = &e
		}
	}

	if end != nil {
		e := truncateDay(*end)
		q.end = &e
	}

	return q
}

// Entity returns the searched entity name.
func (q HeadlineQuery) Entity() string {
	return q.entity
}

// Limit returns the maximum number of headlines to extract.
func (q HeadlineQuery) Limit() int {
	return q.limit
}

// Start returns the window start and whether it is set.
func (q HeadlineQuery) Start() (time.Time, bool) {
	if q.start == nil {
		return time.Time{}, false
	}

	return *q.start, true
}

// End returns the window end and whether it is set.
func (q HeadlineQuery) End() (time.Time, bool) {
	if q.end == nil {
		return time.Time{}, false
	}

	return *q.end, true
}

// StartDate renders the start as YYYY-MM-DD, or "" when absent.
func (q HeadlineQuery) StartDate() string {
	if q.start == nil {
		return ""
	}

	return q.start.Format(DateLayout)
}

// EndDate renders the end as YYYY-MM-DD, or "" when absent.
func (q HeadlineQuery) EndDate() string {
	if q.end == nil {
		return ""
	}

	return q.end.Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
