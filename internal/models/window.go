package models

import "time"

// WindowStatus is the outcome recorded for a collection window.
type WindowStatus string

// Window outcomes. An empty window is a valid outcome, not an error.
const (
	StatusCollected      WindowStatus = "collected"
	StatusCollectedEmpty WindowStatus = "collected-empty"
)

// CollectionWindow is one query unit of up to seven days and its normalized headlines.
type CollectionWindow struct {
	Start     time.Time            `json:"start"`
	End       time.Time            `json:"end"`
	Entity    string               `json:"entity"`
	Status    WindowStatus         `json:"status"`
	Headlines []NormalizedHeadline `json:"headlines"`
	Attempts  int                  `json:"attempts"`
}

// StartDate renders the window start as YYYY-MM-DD.
func (w CollectionWindow) StartDate() string {
	return w.Start.Format(DateLayout)
}

// EndDate renders the window end as YYYY-MM-DD.
func (w CollectionWindow) EndDate() string {
	return w.End.Format(DateLayout)
}

// Failed reports whether the window ended without any headlines.
func (w CollectionWindow) Failed() bool {
	return w.Status == StatusCollectedEmpty
}

// Query builds the adapter query covering this window.
func (w CollectionWindow) Query(limit int) HeadlineQuery {
	start, end := w.Start, w.End

	return NewHeadlineQuery(w.Entity, &start, &end, limit)
}
