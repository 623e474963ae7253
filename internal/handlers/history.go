package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/history"
	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

// HistoryHandler serves the session-scoped assessment history.
type HistoryHandler struct {
	log      *zap.Logger
	capacity int
	key      string
}

func NewHistoryHandler(log *zap.Logger, capacity int, key string) *HistoryHandler {
	return &HistoryHandler{log: log, capacity: capacity, key: key}
}

func (h *HistoryHandler) store(c *gin.Context) *history.Store {
	return history.NewStore(history.NewSessionBackend(sessions.Default(c), h.key), h.capacity)
}

// List handles GET /api/history: the current log, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	entries := h.store(c).Entries()
	c.JSON(http.StatusOK, gin.H{
		"entries":  entries,
		"count":    len(entries),
		"capacity": h.capacity,
	})
}

// Clear handles DELETE /api/history.
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.store(c).Clear(); err != nil {
		h.log.Error("Failed to clear assessment history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

// Chart handles GET /api/history/chart: echarts line options plotting
// confidence over the session's assessments.
func (h *HistoryHandler) Chart(c *gin.Context) {
	entries := h.store(c).Entries()
	line := generateConfidenceChart(entries)
	c.JSON(http.StatusOK, line.JSON())
}

func generateConfidenceChart(entries []models.HistoryEntry) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Assessment Confidence Over Time",
			Subtitle: "Current session",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	// History is stored newest first; the chart reads left to right.
	items := make([]opts.LineData, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		items = append(items, opts.LineData{
			Name:  string(e.Outcome.RiskClass),
			Value: []interface{}{e.CreatedAt, e.Outcome.Confidence},
		})
	}

	line.AddSeries("Confidence", items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
