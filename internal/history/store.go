// Package history keeps the rolling, newest-first log of past assessments.
// The log is bounded: appending beyond capacity evicts the oldest entries,
// never the newest.
package history

import (
	"encoding/json"
	"fmt"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

// DefaultCapacity bounds the log when the caller does not say otherwise.
const DefaultCapacity = 10

// Subscriber receives the full log after every change, newest first.
type Subscriber func(entries []models.HistoryEntry)

type subscription struct {
	id int
	fn Subscriber
}

// Store owns the in-memory log and the persistence backend behind it.
// It is not safe for concurrent use; construct one per request around that
// request's session.
type Store struct {
	backend  Backend
	capacity int

	entries []models.HistoryEntry
	subs    []subscription
	nextSub int
}

// NewStore loads the persisted log through the backend. An absent or
// unparsable blob initializes an empty log rather than failing; stored
// garbage is not user-actionable.
func NewStore(backend Backend, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{backend: backend, capacity: capacity}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := s.backend.Read()
	if err != nil || len(data) == 0 {
		s.entries = nil
		return
	}
	var entries []models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.entries = nil
		return
	}
	// Re-apply the bound in case a prior session persisted with a larger
	// capacity.
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

// Entries returns a copy of the log, newest first.
func (s *Store) Entries() []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the number of entries currently held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Append records one successful assessment: a fresh entry is prepended,
// the log truncated to capacity, the whole log persisted, and subscribers
// notified.
func (s *Store) Append(input models.AssessmentInput, outcome models.PredictionOutcome) (models.HistoryEntry, error) {
	entry := models.NewHistoryEntry(input, outcome)

	entries := make([]models.HistoryEntry, 0, len(s.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to serialize history: %w", err)
	}
	if err := s.backend.Write(data); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to persist history: %w", err)
	}

	s.entries = entries
	s.notify()
	return entry, nil
}

// Clear empties the log and removes its persisted representation.
func (s *Store) Clear() error {
	if err := s.backend.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted history: %w", err)
	}
	s.entries = nil
	s.notify()
	return nil
}

// Subscribe registers fn for change notifications and returns the
// function that releases the subscription. Fan-out is synchronous and in
// subscription order.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	for _, sub := range s.subs {
		sub.fn(s.Entries())
	}
}
