package history

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

func sampleInput(age int) models.AssessmentInput {
	return models.AssessmentInput{
		Age:              age,
		Gender:           models.GenderMale,
		Height:           170,
		Weight:           70,
		SystolicBP:       120,
		DiastolicBP:      80,
		Cholesterol:      models.LevelNormal,
		Glucose:          models.LevelNormal,
		PhysicallyActive: true,
	}
}

func sampleOutcome(confidence float64) models.PredictionOutcome {
	return models.PredictionOutcome{RiskClass: models.RiskLow, Confidence: confidence}
}

func TestStore_StartsEmpty(t *testing.T) {
	s := NewStore(NewMemoryBackend(), 10)
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Entries())
}

func TestAppend_PrependsNewestFirst(t *testing.T) {
	s := NewStore(NewMemoryBackend(), 10)

	first, err := s.Append(sampleInput(7300), sampleOutcome(0.6))
	require.NoError(t, err)
	second, err := s.Append(sampleInput(7301), sampleOutcome(0.7))
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAppend_EvictsOldestBeyondCapacity(t *testing.T) {
	s := NewStore(NewMemoryBackend(), 10)

	ids := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		entry, err := s.Append(sampleInput(7300+i), sampleOutcome(0.5))
		require.NoError(t, err)
		ids = append(ids, entry.ID)
	}

	entries := s.Entries()
	require.Len(t, entries, 10)

	// The ten most recent survive, newest first; the very first append is
	// the one evicted.
	for i, e := range entries {
		assert.Equal(t, ids[10-i], e.ID)
	}
	for _, e := range entries {
		assert.NotEqual(t, ids[0], e.ID)
	}
}

func TestClear_EmptiesLogAndBackend(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend, 10)

	_, err := s.Append(sampleInput(7300), sampleOutcome(0.5))
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	assert.Zero(t, s.Len())

	reloaded := NewStore(backend, 10)
	assert.Empty(t, reloaded.Entries())
}

func TestRoundTrip_IsLossless(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend, 10)

	in := sampleInput(9125)
	in.Smoker = true
	out := models.PredictionOutcome{RiskClass: models.RiskHigh, Confidence: 0.73}
	entry, err := s.Append(in, out)
	require.NoError(t, err)

	reloaded := NewStore(backend, 10)
	entries := reloaded.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, in, entries[0].Input)
	assert.Equal(t, out, entries[0].Outcome)
	assert.True(t, entry.CreatedAt.Equal(entries[0].CreatedAt))
}

func TestLoad_MalformedBlobIsTreatedAsEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Seed([]byte("{definitely not a history log"))

	s := NewStore(backend, 10)
	assert.Empty(t, s.Entries())
}

func TestLoad_ReappliesCapacityBound(t *testing.T) {
	oversized := make([]models.HistoryEntry, 12)
	for i := range oversized {
		oversized[i] = models.HistoryEntry{
			ID:        fmt.Sprintf("entry-%d", i),
			CreatedAt: time.Now().UTC(),
			Input:     sampleInput(7300 + i),
			Outcome:   sampleOutcome(0.5),
		}
	}
	data, err := json.Marshal(oversized)
	require.NoError(t, err)

	backend := NewMemoryBackend()
	backend.Seed(data)

	s := NewStore(backend, 10)
	entries := s.Entries()
	require.Len(t, entries, 10)
	assert.Equal(t, "entry-0", entries[0].ID)
}

func TestSubscribe_NotifiesInSubscriptionOrder(t *testing.T) {
	s := NewStore(NewMemoryBackend(), 10)

	var order []string
	s.Subscribe(func(entries []models.HistoryEntry) {
		order = append(order, "first")
	})
	s.Subscribe(func(entries []models.HistoryEntry) {
		order = append(order, "second")
	})

	_, err := s.Append(sampleInput(7300), sampleOutcome(0.5))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore(NewMemoryBackend(), 10)

	calls := 0
	unsubscribe := s.Subscribe(func(entries []models.HistoryEntry) {
		calls++
	})

	_, err := s.Append(sampleInput(7300), sampleOutcome(0.5))
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	unsubscribe()
	// Releasing twice must be harmless.
	unsubscribe()

	_, err = s.Append(sampleInput(7301), sampleOutcome(0.5))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	require.NoError(t, s.Clear())
	assert.Equal(t, 1, calls)
}

func TestSubscribe_ReceivesCurrentLog(t *testing.T) {
	s := NewStore(NewMemoryBackend(), 10)

	var seen []models.HistoryEntry
	s.Subscribe(func(entries []models.HistoryEntry) {
		seen = entries
	})

	entry, err := s.Append(sampleInput(7300), sampleOutcome(0.5))
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, entry.ID, seen[0].ID)

	require.NoError(t, s.Clear())
	assert.Empty(t, seen)
}
