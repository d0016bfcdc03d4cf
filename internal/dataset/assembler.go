// Package dataset assembles collected windows into per-entity records and
// persists them as CSV, JSON Lines or XLSX files.
package dataset

import (
	"errors"
	"fmt"
	"sync"

	"newsharvest/internal/models"
)

// ErrOutOfOrder is returned when a record does not start after the previous one.
var ErrOutOfOrder = errors.New("record out of chronological order")

// Record is one dataset row: a window start date and its normalized headlines.
type Record struct {
	StartDate string   `json:"date"`
	Headlines []string `json:"headlines"`
}

// RecordFromWindow converts a collected window into a record.
func RecordFromWindow(w models.CollectionWindow) Record {
	headlines := make([]string, len(w.Headlines))
	copy(headlines, w.Headlines)

	return Record{StartDate: w.StartDate(), Headlines: headlines}
}

// Assembler accumulates an entity's records in arrival order.
type Assembler struct {
	entity  string
	records []Record
	err     error
	mu      sync.Mutex
}

// NewAssembler creates an empty assembler for entity.
func NewAssembler(entity string) *Assembler {
	return &Assembler{entity: entity}
}

// Entity returns the entity this assembler collects for.
func (a *Assembler) Entity() string {
	return a.entity
}

// Add appends r. Records must arrive with strictly increasing start dates.
func (a *Assembler) Add(r Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.records); n > 0 && r.StartDate <= a.records[n-1].StartDate {
		return fmt.Errorf("%w: %s after %s", ErrOutOfOrder, r.StartDate, a.records[n-1].StartDate)
	}

	a.records = append(a.records, r)

	return nil
}

// OnWindow adds the window as a record. Windows of other entities are
// ignored; the first ordering error is kept and reported by Err.
func (a *Assembler) OnWindow(w models.CollectionWindow) {
	if w.Entity != a.entity {
		return
	}

	if err := a.Add(RecordFromWindow(w)); err != nil {
		a.mu.Lock()
		if a.err == nil {
			a.err = err
		}
		a.mu.Unlock()
	}
}

// Err returns the first error seen by OnWindow.
func (a *Assembler) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.err
}

// Records returns a copy of the assembled records.
func (a *Assembler) Records() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]Record(nil), a.records...)
}

// Len returns the number of assembled records.
func (a *Assembler) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.records)
}
