package handlers

import (
	"errors"
	"io"
	"net/http"

	"gridbill/internal/ingest"
	"gridbill/internal/models"

	"github.com/gin-gonic/gin"
)

// IngestHandler handles wide-table batch ingestion
type IngestHandler struct {
	pipeline *ingest.Pipeline
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(pipeline *ingest.Pipeline) *IngestHandler {
	return &IngestHandler{pipeline: pipeline}
}

// IngestBatch godoc
// @Summary Ingest a wide-table CSV batch
// @Description Reshapes a wide per-customer CSV (multipart "file" field or raw body) into customers, readings and prices. With replace=true all three stores are truncated first; without it, rows already present are counted as skips.
// @Tags ingest
// @Accept mpfd
// @Produce json
// @Param file formData file false "Wide-table CSV"
// @Param replace query boolean false "Truncate all stores before ingesting"
// @Success 200 {object} models.IngestSummary
// @Failure 400 {object} models.ErrorResponse "Unreadable or shapeless input"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /ingest [post]
func (h *IngestHandler) IngestBatch(c *gin.Context) {
	var reader io.ReadCloser

	if file, err := c.FormFile("file"); err == nil {
		opened, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open uploaded file"})
			return
		}
		reader = opened
	} else {
		reader = c.Request.Body
	}
	defer reader.Close()

	var (
		summary models.IngestSummary
		err     error
	)
	if c.Query("replace") == "true" {
		summary, err = h.pipeline.Replace(c.Request.Context(), reader)
	} else {
		summary, err = h.pipeline.Run(c.Request.Context(), reader)
	}

	if errors.Is(err, ingest.ErrNoTimestampColumn) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "ingest failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
