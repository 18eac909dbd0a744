package handlers

import (
	"errors"
	"net/http"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer-related requests
type CustomerHandler struct {
	repo repository.CustomerRepository
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(repo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

// RegisterCustomer godoc
// @Summary Register or update a customer
// @Description Upserts a customer by name; role flags of an existing customer are merged with OR
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body models.RegisterCustomerRequest true "Customer"
// @Success 200 {object} models.Customer
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /customers [post]
func (h *CustomerHandler) RegisterCustomer(c *gin.Context) {
	var req models.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	customer := &models.Customer{
		Name:       req.Name,
		IsConsumer: req.IsConsumer,
		IsProducer: req.IsProducer,
	}
	if err := h.repo.Upsert(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to register customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// GetCustomer godoc
// @Summary Get a customer by ID
// @Description Returns an active customer by its ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 400 {object} models.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} models.ErrorResponse "Customer not found"
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	customer, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && customer.IsDeleted()) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ListCustomers godoc
// @Summary List customers
// @Description Returns all active customers, optionally filtered by a name substring
// @Tags customers
// @Produce json
// @Param name query string false "Name substring"
// @Success 200 {array} models.Customer
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	filter := repository.CustomerFilter{}
	if name := c.Query("name"); name != "" {
		filter.Search = &name
	}

	customers, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Description Updates the name and/or role flags of an active customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body models.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} models.Customer
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Customer not found"
// @Failure 409 {object} models.ErrorResponse "Name already in use"
// @Router /customers/{id} [patch]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	customer, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customer"})
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.IsConsumer != nil {
		customer.IsConsumer = *req.IsConsumer
	}
	if req.IsProducer != nil {
		customer.IsProducer = *req.IsProducer
	}

	err = h.repo.Update(c.Request.Context(), customer)
	switch {
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "customer name already in use"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update customer"})
	default:
		c.JSON(http.StatusOK, customer)
	}
}

// SoftDeleteCustomer godoc
// @Summary Soft delete a customer
// @Description Marks the customer and all of its readings as deleted in one atomic operation
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} models.ErrorResponse "Customer not found or already deleted"
// @Router /customers/{id} [delete]
func (h *CustomerHandler) SoftDeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	err = h.repo.SoftDelete(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found or already deleted"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete customer"})
	default:
		c.JSON(http.StatusOK, models.SuccessResponse{Message: "customer and associated readings marked as deleted"})
	}
}

// RestoreCustomer godoc
// @Summary Restore a soft-deleted customer
// @Description Clears the customer's deletion marker; reading markers are left untouched
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 400 {object} models.ErrorResponse "Customer is already active"
// @Failure 404 {object} models.ErrorResponse "Customer not found"
// @Router /customers/{id}/restore [post]
func (h *CustomerHandler) RestoreCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	err = h.repo.Restore(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
		return
	case errors.Is(err, repository.ErrCustomerActive):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "customer is already active"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to restore customer"})
		return
	}

	customer, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PurgeCustomer godoc
// @Summary Hard delete a customer without readings
// @Description Physically removes a customer; fails when any reading references it
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} models.ErrorResponse "Customer not found"
// @Failure 409 {object} models.ErrorResponse "Customer has associated readings"
// @Router /customers/{id}/purge [delete]
func (h *CustomerHandler) PurgeCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid customer ID"})
		return
	}

	err = h.repo.HardDelete(c.Request.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "customer not found"})
	case errors.Is(err, repository.ErrHasAssociatedRecords):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "customer has associated readings and cannot be deleted"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete customer"})
	default:
		c.Status(http.StatusNoContent)
	}
}
