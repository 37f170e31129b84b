package memory

import (
	"context"
	"sync"
)

// Source implements ports.SubjectSource over a value held in memory.
// Safe for concurrent use, so producers may update it while a spec polls.
type Source struct {
	value   any
	fetches int
	mu      sync.RWMutex
}

// NewSource creates a source holding value.
func NewSource(value any) *Source {
	return &Source{value: value}
}

// Set replaces the current value.
func (s *Source) Set(value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
}

// Update replaces the current value with fn applied to it.
func (s *Source) Update(fn func(any) any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
}

// Fetch returns the current value.
func (s *Source) Fetch(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.value, nil
}

// Fetches returns how many times the value was fetched.
func (s *Source) Fetches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetches
}
