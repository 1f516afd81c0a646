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

// bestsellerLimit caps the bestseller query result.
const bestsellerLimit = 5

// receiptHandler handles HTTP requests related to receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
	bookService    portssvc.BookSvcFacade
}

// newReceiptHandler creates a new receiptHandler.
func newReceiptHandler(rs portssvc.ReceiptSvcFacade, bs portssvc.BookSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs, bookService: bs}
}

// RegisterReceiptRoutes registers routes related to receipts.
func RegisterReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade, bookService portssvc.BookSvcFacade) {
	h := newReceiptHandler(receiptService, bookService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("/add", h.createReceipt)
		receipts.GET("/all", h.listReceipts)
		receipts.GET("/bestsellers", h.listBestsellers)
		receipts.PUT("/:id", h.updateReceipt)
	}
}

// respondReceiptError maps receipt workflow errors onto the API contract.
func respondReceiptError(c *gin.Context, err error) {
	var notFound *services.BooksNotFoundError
	var noStock *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, dto.Err("Customer not found."))
	case errors.Is(err, services.ErrReceiptNotFound):
		c.JSON(http.StatusNotFound, dto.Err("Receipt not found."))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Status:      false,
			Message:     "Some book IDs were not found.",
			NotFoundIDs: notFound.NotFoundIDs,
		})
	case errors.As(err, &noStock):
		c.JSON(http.StatusBadRequest, dto.Err(noStock.Error()))
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Receipt operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to process receipt"))
	}
}

// createReceipt godoc
// @Summary Create a receipt
// @Description Records a sale: validates the customer, books and stock, then
// @Description persists the receipt and decrements inventory atomically.
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptEnvelope
// @Failure 400 {object} dto.ErrorResponse "Validation error or insufficient stock"
// @Failure 404 {object} dto.ErrorResponse "Customer or book not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts/add [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Err("Invalid request format: "+err.Error()))
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Err("Unauthorized"))
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondReceiptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ReceiptEnvelope{
		Status:  true,
		Message: "Receipt created successfully.",
		Receipt: *receipt,
	})
}

// listReceipts godoc
// @Summary List all receipts
// @Description Retrieves all receipts enriched with customer names and book details, newest first.
// @Tags receipts
// @Produce json
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts/all [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipts, err := h.receiptService.ListReceipts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list receipts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to list receipts"))
		return
	}

	c.JSON(http.StatusOK, dto.ListReceiptsResponse{Status: true, Receipts: receipts})
}

// listBestsellers godoc
// @Summary List bestselling books
// @Description Retrieves the top five books by total copies sold.
// @Tags receipts
// @Produce json
// @Success 200 {object} dto.BestsellersResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts/bestsellers [get]
func (h *receiptHandler) listBestsellers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	books, err := h.bookService.ListBestsellers(c.Request.Context(), bestsellerLimit)
	if err != nil {
		logger.Error("Failed to list bestsellers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to list bestsellers"))
		return
	}

	c.JSON(http.StatusOK, dto.ToBestsellersResponse(books))
}

// updateReceipt godoc
// @Summary Edit a receipt
// @Description Replaces a receipt's line items. Inventory is adjusted by the
// @Description net difference between the old and new items in one transaction.
// @Tags receipts
// @Accept json
// @Produce json
// @Param id path string true "Receipt ID"
// @Param receipt body dto.CreateReceiptRequest true "New receipt contents"
// @Success 200 {object} dto.ReceiptEnvelope
// @Failure 400 {object} dto.ErrorResponse "Validation error or insufficient stock"
// @Failure 404 {object} dto.ErrorResponse "Receipt, customer or book not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts/{id} [put]
func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")
	if uuid.Validate(receiptID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Receipt not found."))
		return
	}

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Err("Invalid request format: "+err.Error()))
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Err("Unauthorized"))
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), receiptID, req, requestingUserID)
	if err != nil {
		respondReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReceiptEnvelope{
		Status:  true,
		Message: "Receipt updated successfully.",
		Receipt: *receipt,
	})
}
