package dataset

import (
	"sync"

	"newsharvest/internal/models"
)

// Set routes windows of many entities to one Assembler per entity,
// keeping entities in the order they were first seen.
type Set struct {
	byEntity map[string]*Assembler
	order    []string
	mu       sync.Mutex
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{byEntity: make(map[string]*Assembler)}
}

// Get returns the assembler for entity, creating it if needed.
func (s *Set) Get(entity string) *Assembler {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byEntity[entity]
	if !ok {
		a = NewAssembler(entity)
		s.byEntity[entity] = a
		s.order = append(s.order, entity)
	}

	return a
}

// OnWindow adds w to its entity's assembler.
func (s *Set) OnWindow(w models.CollectionWindow) {
	s.Get(w.Entity).OnWindow(w)
}

// Assemblers returns every assembler in first-seen order.
func (s *Set) Assemblers() []*Assembler {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Assembler, 0, len(s.order))
	for _, e := range s.order {
		out = append(out, s.byEntity[e])
	}

	return out
}
