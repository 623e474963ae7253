package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/history"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/predictor"
)

// Predictor is the one outbound dependency of the submission workflow.
type Predictor interface {
	Predict(ctx context.Context, input models.AssessmentInput) (models.PredictionOutcome, error)
}

// AssessmentHandler runs the validate-predict-record workflow for form
// submissions.
type AssessmentHandler struct {
	log             *zap.Logger
	predictor       Predictor
	inflight        *inflightGuard
	historyCapacity int
	historyKey      string
}

func NewAssessmentHandler(log *zap.Logger, p Predictor, historyCapacity int, historyKey string) *AssessmentHandler {
	return &AssessmentHandler{
		log:             log,
		predictor:       p,
		inflight:        newInflightGuard(),
		historyCapacity: historyCapacity,
		historyKey:      historyKey,
	}
}

// SubmitResponse is the success payload: the outcome, its one-line
// summary, and the history entry it was recorded as.
type SubmitResponse struct {
	Outcome models.PredictionOutcome `json:"outcome"`
	Message string                   `json:"message"`
	Entry   models.HistoryEntry      `json:"entry"`
}

// Submit handles POST /api/assess. The input is either fully valid or
// rejected wholesale; the prediction service is only called for valid
// input, and history gains exactly one entry per successful response.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req models.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is not valid JSON"})
		return
	}

	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
		return
	}

	sessionID := c.GetString("session_id")
	if !h.inflight.tryAcquire(sessionID) {
		c.JSON(http.StatusConflict, gin.H{"error": "an assessment is already being processed"})
		return
	}
	defer h.inflight.release(sessionID)

	input := req.Input()
	outcome, err := h.predictor.Predict(c.Request.Context(), input)
	if err != nil {
		h.failSubmit(c, err)
		return
	}

	store := history.NewStore(history.NewSessionBackend(sessions.Default(c), h.historyKey), h.historyCapacity)
	entry, err := store.Append(input, outcome)
	if err != nil {
		// The prediction itself succeeded; a session write failure only
		// costs the history entry.
		h.log.Warn("Failed to record assessment in session history", zap.Error(err))
		entry = models.NewHistoryEntry(input, outcome)
	}

	h.log.Info("Assessment completed",
		zap.String("risk_class", string(outcome.RiskClass)),
		zap.Float64("confidence", outcome.Confidence),
	)

	c.JSON(http.StatusOK, SubmitResponse{
		Outcome: outcome,
		Message: outcome.Summary(),
		Entry:   entry,
	})
}

// failSubmit maps predictor failures to the error notification shown to
// the user. Nothing is recorded and nothing is retried.
func (h *AssessmentHandler) failSubmit(c *gin.Context, err error) {
	var respErr *predictor.ResponseError
	var transErr *predictor.TransportError

	switch {
	case errors.As(err, &respErr):
		h.log.Error("Prediction service rejected the request",
			zap.Int("status", respErr.StatusCode),
			zap.String("detail", respErr.Detail),
		)
	case errors.As(err, &transErr):
		h.log.Error("Prediction service unreachable", zap.Error(transErr.Err))
	default:
		h.log.Error("Prediction failed", zap.Error(err))
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
