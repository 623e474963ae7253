package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

func testInput() models.AssessmentInput {
	return models.AssessmentInput{
		Age:              9125,
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

func TestPredict_Success(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"prediction": 0, "probability": 0.82})
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, zap.NewNop())
	outcome, err := c.Predict(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, models.RiskLow, outcome.RiskClass)
	assert.Equal(t, 0.82, outcome.Confidence)

	// The wire format carries the integer-coded fields the model expects.
	assert.Equal(t, float64(9125), gotBody["age"])
	assert.Equal(t, float64(1), gotBody["gender"])
	assert.Equal(t, float64(120), gotBody["ap_hi"])
	assert.Equal(t, float64(80), gotBody["ap_lo"])
	assert.Equal(t, float64(1), gotBody["cholesterol"])
	assert.Equal(t, float64(1), gotBody["gluc"])
	assert.Equal(t, float64(0), gotBody["smoke"])
	assert.Equal(t, float64(0), gotBody["alco"])
	assert.Equal(t, float64(1), gotBody["active"])
}

func TestPredict_HighRisk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"prediction": 1, "probability": 0.64})
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, zap.NewNop())
	outcome, err := c.Predict(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, outcome.RiskClass)
}

func TestPredict_NonSuccessStatusIsResponseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, zap.NewNop())
	_, err := c.Predict(context.Background(), testInput())

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	assert.Contains(t, respErr.Detail, "model unavailable")
}

func TestPredict_MalformedBodyIsResponseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, zap.NewNop())
	_, err := c.Predict(context.Background(), testInput())

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Zero(t, respErr.StatusCode)
}

func TestPredict_OutOfContractValuesAreResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"prediction out of range", map[string]any{"prediction": 2, "probability": 0.5}},
		{"probability above one", map[string]any{"prediction": 0, "probability": 1.5}},
		{"probability negative", map[string]any{"prediction": 0, "probability": -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			c := New(server.URL, 5*time.Second, zap.NewNop())
			_, err := c.Predict(context.Background(), testInput())

			var respErr *ResponseError
			assert.ErrorAs(t, err, &respErr)
		})
	}
}

func TestPredict_UnreachableServiceIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	c := New(server.URL, time.Second, zap.NewNop())
	_, err := c.Predict(context.Background(), testInput())

	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
	assert.Error(t, transErr.Unwrap())
}
