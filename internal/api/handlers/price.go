package handlers

import (
	"errors"
	"net/http"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PriceHandler handles price-related requests
type PriceHandler struct {
	repo repository.PriceRepository
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(repo repository.PriceRepository) *PriceHandler {
	return &PriceHandler{repo: repo}
}

// CreatePrice godoc
// @Summary Record a price sample
// @Description Stores one market clearing price; a sample already present at the timestamp is rejected
// @Tags prices
// @Accept json
// @Produce json
// @Param price body models.CreatePriceRequest true "Price sample"
// @Success 201 {object} models.PriceSample
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 409 {object} models.ErrorResponse "Duplicate timestamp"
// @Router /prices [post]
func (h *PriceHandler) CreatePrice(c *gin.Context) {
	var req models.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	price := &models.PriceSample{
		Timestamp:   req.Timestamp.UTC(),
		PriceEURKWh: *req.PriceEURKWh,
	}

	err := h.repo.Insert(c.Request.Context(), price)
	switch {
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "duplicate timestamp"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record price"})
	default:
		c.JSON(http.StatusCreated, price)
	}
}

// ListPrices godoc
// @Summary List price samples
// @Description Returns price samples, optionally bounded by an inclusive time range
// @Tags prices
// @Produce json
// @Param start query string false "Start time (RFC3339)"
// @Param end query string false "End time (RFC3339)"
// @Success 200 {array} models.PriceSample
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Router /prices [get]
func (h *PriceHandler) ListPrices(c *gin.Context) {
	filter := repository.PriceFilter{}

	if startStr := c.Query("start"); startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid start time format, use RFC3339"})
			return
		}
		filter.Start = &start
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid end time format, use RFC3339"})
			return
		}
		filter.End = &end
	}

	prices, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch prices"})
		return
	}
	if prices == nil {
		prices = []models.PriceSample{}
	}

	c.JSON(http.StatusOK, prices)
}

// GetLatestPrice godoc
// @Summary Get the most recent price sample
// @Tags prices
// @Produce json
// @Success 200 {object} models.PriceSample
// @Failure 404 {object} models.ErrorResponse "No prices available"
// @Router /prices/latest [get]
func (h *PriceHandler) GetLatestPrice(c *gin.Context) {
	price, err := h.repo.GetLatest(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no prices available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch latest price"})
		return
	}

	c.JSON(http.StatusOK, price)
}

// UpdatePrice godoc
// @Summary Update the value of a price sample
// @Description Modifies the price of an existing sample; the timestamp cannot change
// @Tags prices
// @Accept json
// @Produce json
// @Param id path string true "Price ID"
// @Param price body models.UpdatePriceRequest true "New value"
// @Success 200 {object} models.PriceSample
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Price not found"
// @Router /prices/{id} [patch]
func (h *PriceHandler) UpdatePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid price ID"})
		return
	}

	var req models.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	price, err := h.repo.UpdatePrice(c.Request.Context(), id, *req.PriceEURKWh)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "price not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update price"})
		return
	}

	c.JSON(http.StatusOK, price)
}
