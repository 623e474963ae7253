package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/IrakliAvdulaj/cardio-risk-vision/internal/models"
)

// FormHandler serves the form field schema the page renders from.
type FormHandler struct {
	log    *zap.Logger
	schema *models.FormSchema
}

func NewFormHandler(log *zap.Logger, schema *models.FormSchema) *FormHandler {
	return &FormHandler{log: log, schema: schema}
}

// Schema handles GET /api/form: field definitions plus the CSRF token the
// client must echo on mutating requests.
func (h *FormHandler) Schema(c *gin.Context) {
	csrfToken := c.GetString("csrf_token")
	c.JSON(http.StatusOK, gin.H{
		"fields":     h.schema.Fields,
		"csrf_token": csrfToken,
	})
}
