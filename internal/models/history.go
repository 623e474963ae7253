package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one completed assessment: the validated input and the
// outcome the prediction service returned for it. Entries are immutable
// once created; they only ever leave the log through capacity eviction or
// an explicit clear.
type HistoryEntry struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Input     AssessmentInput   `json:"input"`
	Outcome   PredictionOutcome `json:"outcome"`
}

// NewHistoryEntry stamps a fresh entry with a unique id and the current
// time.
func NewHistoryEntry(input AssessmentInput, outcome PredictionOutcome) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Outcome:   outcome,
	}
}
