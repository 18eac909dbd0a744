package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gridbill/internal/cache"
	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReadingHandler handles reading-related requests
type ReadingHandler struct {
	repo         repository.ReadingRepository
	customerRepo repository.CustomerRepository
	cache        cache.Cache
	cacheTTL     time.Duration
}

// NewReadingHandler creates a new ReadingHandler
func NewReadingHandler(repo repository.ReadingRepository, customerRepo repository.CustomerRepository, c cache.Cache, cacheTTL time.Duration) *ReadingHandler {
	return &ReadingHandler{
		repo:         repo,
		customerRepo: customerRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
	}
}

// CreateReading godoc
// @Summary Record a reading
// @Description Stores one consumption/production sample; at most one active reading may exist per (customer, timestamp)
// @Tags readings
// @Accept json
// @Produce json
// @Param reading body models.CreateReadingRequest true "Reading"
// @Success 201 {object} models.Reading
// @Failure 400 {object} models.ErrorResponse "Invalid request or unknown customer"
// @Failure 409 {object} models.ErrorResponse "Duplicate timestamp"
// @Router /readings [post]
func (h *ReadingHandler) CreateReading(c *gin.Context) {
	var req models.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	// Referential check before write; a reading is never orphaned.
	customer, err := h.customerRepo.GetByID(c.Request.Context(), req.CustomerID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && customer.IsDeleted()) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "customer does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customer"})
		return
	}

	reading := &models.Reading{
		CustomerID:     req.CustomerID,
		Timestamp:      req.Timestamp.UTC(),
		ConsumptionKWh: req.ConsumptionKWh,
		ProductionKWh:  req.ProductionKWh,
	}

	err = h.repo.Insert(c.Request.Context(), reading)
	switch {
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "duplicate timestamp"})
	case errors.Is(err, repository.ErrCustomerNotFound):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "customer does not exist"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record reading"})
	default:
		c.JSON(http.StatusCreated, reading)
	}
}

// ListReadings godoc
// @Summary List readings for a customer
// @Description Returns the customer's active readings, optionally bounded by an inclusive time range. Results are cached; staleness up to the cache TTL is expected.
// @Tags readings
// @Produce json
// @Param id path string true "Customer ID"
// @Param start query string false "Start time (RFC3339)"
// @Param end query string false "End time (RFC3339)"
// @Success 200 {array} models.Reading
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 404 {object} models.ErrorResponse "Customer not found"
// @Router /customers/{id}/readings [get]
func (h *ReadingHandler) ListReadings(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	customer, err := h.customerRepo.GetByID(c.Request.Context(), customerID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && customer.IsDeleted()) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customer"})
		return
	}

	filter := repository.ReadingFilter{CustomerID: &customerID}

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

	key := readingsCacheKey(customerID, filter.Start, filter.End)
	if cached, err := h.cache.Get(c.Request.Context(), key); err == nil {
		var readings []models.Reading
		if err := json.Unmarshal(cached, &readings); err == nil {
			c.JSON(http.StatusOK, readings)
			return
		}
	}

	readings, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch readings"})
		return
	}
	if readings == nil {
		readings = []models.Reading{}
	}

	if encoded, err := json.Marshal(readings); err == nil {
		_ = h.cache.Set(c.Request.Context(), key, encoded, h.cacheTTL)
	}

	c.JSON(http.StatusOK, readings)
}

func readingsCacheKey(customerID uuid.UUID, start, end *time.Time) string {
	var s, e int64
	if start != nil {
		s = start.UnixNano()
	}
	if end != nil {
		e = end.UnixNano()
	}
	return fmt.Sprintf("readings:%s:%d:%d", customerID, s, e)
}
