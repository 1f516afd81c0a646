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

// bookHandler handles HTTP requests related to the book catalog.
type bookHandler struct {
	bookService portssvc.BookSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(bs portssvc.BookSvcFacade) *bookHandler {
	return &bookHandler{bookService: bs}
}

// RegisterBookRoutes registers routes related to books.
func RegisterBookRoutes(rg *gin.RouterGroup, bookService portssvc.BookSvcFacade) {
	h := newBookHandler(bookService)

	books := rg.Group("/books")
	{
		books.POST("/add", h.createBook)
		books.GET("/all", h.listBooks)
		books.GET("/:id", h.getBook)
		books.PATCH("/:id", h.updateBook)
		books.DELETE("/:id", h.deleteBook)
	}
}

// createBook godoc
// @Summary Add a new book
// @Description Adds a new book to the catalog. The ISBN must be unique.
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input, validation error, or duplicate ISBN"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /books/add [post]
func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Err("Invalid request format: "+err.Error()))
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Err("Unauthorized"))
		return
	}

	newBook, err := h.bookService.CreateBook(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, services.ErrBookExists) {
			c.JSON(http.StatusBadRequest, dto.Err("This book already exists."))
			return
		}
		logger.Error("Failed to create book", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to create book"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "book": dto.ToBookResponse(newBook)})
}

// listBooks godoc
// @Summary List all books
// @Description Retrieves all books in the catalog, newest first.
// @Tags books
// @Produce json
// @Success 200 {object} dto.ListBooksResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /books/all [get]
func (h *bookHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	books, err := h.bookService.ListBooks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list books", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to list books"))
		return
	}

	c.JSON(http.StatusOK, dto.ToListBooksResponse(books))
}

// getBook godoc
// @Summary Get a book by ID
// @Description Retrieves details for a specific book. A malformed ID is treated as not found.
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /books/{id} [get]
func (h *bookHandler) getBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("id")
	if uuid.Validate(bookID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Book not found."))
		return
	}

	book, err := h.bookService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, dto.Err("Book not found."))
			return
		}
		logger.Error("Failed to get book", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to retrieve book"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "book": dto.ToBookResponse(book)})
}

// updateBook godoc
// @Summary Update a book
// @Description Applies a partial update to a book. At least one field must change.
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, duplicate ISBN, or stock reduction"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /books/{id} [patch]
func (h *bookHandler) updateBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("id")
	if uuid.Validate(bookID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Book not found."))
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Err("Invalid request format: "+err.Error()))
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Err("Unauthorized"))
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			c.JSON(http.StatusNotFound, dto.Err("Book not found."))
		case errors.Is(err, services.ErrBookExists):
			c.JSON(http.StatusBadRequest, dto.Err("Another book with this ISBN already exists."))
		case errors.Is(err, services.ErrNothingToSave):
			c.JSON(http.StatusOK, dto.OK("Nothing changed. Book was not updated."))
		case errors.Is(err, services.ErrStockReduction):
			c.JSON(http.StatusBadRequest, dto.Err("You cannot reduce the number of copies in stock below the existing value."))
		default:
			logger.Error("Failed to update book", slog.String("book_id", bookID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.Err("Failed to update book"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "book": dto.ToBookResponse(book)})
}

// deleteBook godoc
// @Summary Delete a book
// @Description Removes a book from the catalog.
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /books/{id} [delete]
func (h *bookHandler) deleteBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("id")
	if uuid.Validate(bookID) != nil {
		c.JSON(http.StatusNotFound, dto.Err("Book not found."))
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), bookID); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, dto.Err("Book not found."))
			return
		}
		logger.Error("Failed to delete book", slog.String("book_id", bookID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Err("Failed to delete book"))
		return
	}

	c.JSON(http.StatusOK, dto.OK("Book deleted successfully."))
}
