package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

// maxResponseBytes caps how much of a response body is read; a well-formed
// prediction is a few dozen bytes.
const maxResponseBytes = 1 << 16

// Client calls the remote cardiovascular risk prediction service.
type Client struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a client for the prediction endpoint. The timeout bounds the
// whole exchange; without it a stalled service would pin a submission
// forever.
func New(url string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Predict sends one assessment to the prediction service and returns the
// typed outcome. Failures are either a *TransportError (request never
// completed) or a *ResponseError (service answered with garbage or a
// non-success status).
func (c *Client) Predict(ctx context.Context, input models.AssessmentInput) (models.PredictionOutcome, error) {
	body, err := json.Marshal(input.PredictorRequest())
	if err != nil {
		return models.PredictionOutcome{}, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return models.PredictionOutcome{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.PredictionOutcome{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.PredictionOutcome{}, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.PredictionOutcome{}, &ResponseError{
			StatusCode: resp.StatusCode,
			Detail:     string(bytes.TrimSpace(raw)),
		}
	}

	var parsed models.PredictionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return models.PredictionOutcome{}, &ResponseError{Detail: "body is not valid prediction JSON"}
	}
	if parsed.Prediction != 0 && parsed.Prediction != 1 {
		return models.PredictionOutcome{}, &ResponseError{Detail: "prediction must be 0 or 1"}
	}
	if parsed.Probability < 0 || parsed.Probability > 1 {
		return models.PredictionOutcome{}, &ResponseError{Detail: "probability out of range"}
	}

	c.log.Debug("Prediction received",
		zap.Int("prediction", parsed.Prediction),
		zap.Float64("probability", parsed.Probability),
		zap.Duration("latency", time.Since(start)),
	)

	return parsed.Outcome(), nil
}
