// Package ratelimit implements a fixed rolling-window request quota keyed by
// subject identifier. The store is an injected abstraction so a distributed
// backend can be substituted without touching calling code; the bundled
// in-memory store is per-process, which is an accepted limitation of this
// design (horizontally scaled deployments will over-admit in aggregate).
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Record tracks request consumption for one subject within the current window.
type Record struct {
	// Count is the number of admitted requests in the current window.
	Count int
	// ResetAt is when the current window ends and the count resets.
	ResetAt time.Time
}

// Store persists rate limit records keyed by subject identifier.
type Store interface {
	Get(subject string) (Record, bool)
	Put(subject string, record Record)
	Delete(subject string)
}

// MemoryStore is an in-process Store backed by a map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// Get returns the record for a subject, if present.
func (s *MemoryStore) Get(subject string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[subject]
	return record, ok
}

// Put stores the record for a subject.
func (s *MemoryStore) Put(subject string, record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[subject] = record
}

// Delete removes the record for a subject.
func (s *MemoryStore) Delete(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, subject)
}

// Sweep deletes all records whose window has passed, bounding memory growth.
// Returns the number of records removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for subject, record := range s.records {
		if now.After(record.ResetAt) {
			delete(s.records, subject)
			removed++
		}
	}
	return removed
}

// Len returns the number of records currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// StartSweeper runs Sweep on every tick until the context is cancelled.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}
