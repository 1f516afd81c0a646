package services

import (
	"context"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
)

// BookReaderSvc defines read operations for book data
type BookReaderSvc interface {
	// GetBookByID retrieves a specific book by its ID.
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooks retrieves all books, newest first.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// ListBestsellers retrieves the top selling books, best first.
	ListBestsellers(ctx context.Context, limit int) ([]domain.Book, error)
}

// BookWriterSvc defines write operations for book data
type BookWriterSvc interface {
	// CreateBook persists a new book.
	CreateBook(ctx context.Context, req dto.CreateBookRequest, creatorUserID string) (*domain.Book, error)

	// UpdateBook applies a partial update to an existing book.
	UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, requestingUserID string) (*domain.Book, error)

	// DeleteBook removes a book.
	DeleteBook(ctx context.Context, bookID string) error
}

// BookSvcFacade combines all book-related service interfaces
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
