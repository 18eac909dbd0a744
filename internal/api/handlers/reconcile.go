package handlers

import (
	"errors"
	"net/http"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/reconcile"
	"gridbill/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconcileHandler handles cost/revenue queries
type ReconcileHandler struct {
	service      *reconcile.Service
	customerRepo repository.CustomerRepository
}

// NewReconcileHandler creates a new ReconcileHandler
func NewReconcileHandler(service *reconcile.Service, customerRepo repository.CustomerRepository) *ReconcileHandler {
	return &ReconcileHandler{
		service:      service,
		customerRepo: customerRepo,
	}
}

// CostRevenue godoc
// @Summary Compute cost and revenue for a customer
// @Description Joins the customer's readings to prices on exact timestamp equality over the inclusive range and sums consumption*price and production*price. A range without readings yields zero totals. Results are cached; staleness up to the cache TTL is expected.
// @Tags reconcile
// @Produce json
// @Param id path string true "Customer ID"
// @Param start query string true "Start time (RFC3339)"
// @Param end query string true "End time (RFC3339)"
// @Success 200 {object} models.CostRevenueSummary
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 404 {object} models.ErrorResponse "Customer not found"
// @Router /customers/{id}/cost-revenue [get]
func (h *ReconcileHandler) CostRevenue(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	// The reconciler is total over its inputs; resolving the customer is
	// this boundary's job.
	customer, err := h.customerRepo.GetByID(c.Request.Context(), customerID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && customer.IsDeleted()) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customer"})
		return
	}

	startStr := c.Query("start")
	if startStr == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "start is required"})
		return
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid start time format, use RFC3339"})
		return
	}

	endStr := c.Query("end")
	if endStr == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "end is required"})
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid end time format, use RFC3339"})
		return
	}

	if end.Before(start) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "end must be after start"})
		return
	}

	summary, err := h.service.CostRevenue(c.Request.Context(), customerID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to compute cost and revenue"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
