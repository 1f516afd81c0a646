package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
	"github.com/mshaarawy/bookstore_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// newCustomerHandler creates a new customerHandler.
func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// RegisterCustomerRoutes registers routes related to customers.
func RegisterCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("/add", h.createCustomer)
		customers.GET("/all", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PATCH("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Add a new customer
// @Description Adds a new customer. The phone number must be unique.
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, validation error, or duplicate phone"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/add [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Err("Invalid request format: "+err.Error()))
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Err("Unauthorized"))
		return
	}

	newCustomer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, services.ErrPhoneExists) {
			c.JSON(http.StatusBadRequest, dto.Err("This phone number already exists."))
			return
		}
		logger.Error("Failed to create customer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to create customer"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "customer": dto.ToCustomerResponse(newCustomer)})
}

// listCustomers godoc
// @Summary List all customers
// @Description Retrieves all customers, newest first.
// @Tags customers
// @Produce json
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/all [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to list customers"))
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Description Retrieves details for a specific customer. A malformed ID is treated as not found.
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")
	if uuid.Validate(customerID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
			return
		}
		logger.Error("Failed to get customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to retrieve customer"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "customer": dto.ToCustomerResponse(customer)})
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Applies a partial update to a customer. At least one field must change.
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or phone number already taken"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [patch]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")
	if uuid.Validate(customerID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Err("Invalid request format: "+err.Error()))
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Err("Unauthorized"))
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
		case errors.Is(err, services.ErrPhoneExists):
			c.JSON(http.StatusBadRequest, dto.Err("This phone number is already associated with another customer."))
		case errors.Is(err, services.ErrNothingToSave):
			c.JSON(http.StatusOK, dto.OK("Nothing changed. Customer was not updated."))
		default:
			logger.Error("Failed to update customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.Err("Failed to update customer"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "customer": dto.ToCustomerResponse(customer)})
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Removes a customer.
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")
	if uuid.Validate(customerID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
			return
		}
		logger.Error("Failed to delete customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to delete customer"))
		return
	}

	c.JSON(http.StatusOK, dto.OK("Customer deleted successfully."))
}
