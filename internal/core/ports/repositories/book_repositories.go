package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
)

// BookReader defines read operations for book data
type BookReader interface {
	// FindBookByID retrieves a specific book by its unique identifier.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// FindBookByISBN retrieves a book by its ISBN, or apperrors.ErrNotFound.
	FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)

	// FindBooksByIDs retrieves multiple books by their IDs. IDs with no
	// matching book are simply absent from the returned map.
	FindBooksByIDs(ctx context.Context, bookIDs []string) (map[string]domain.Book, error)

	// ListBooks retrieves all books.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// ListBestsellers retrieves up to limit books ordered by total sold
	// descending, ties broken by book ID.
	ListBestsellers(ctx context.Context, limit int) ([]domain.Book, error)
}

// BookWriter defines write operations for book data
type BookWriter interface {
	// SaveBook persists a new book.
	SaveBook(ctx context.Context, book domain.Book) error

	// UpdateBook updates an existing book's details.
	UpdateBook(ctx context.Context, book domain.Book) error

	// DeleteBook removes a book. Returns apperrors.ErrNotFound if absent.
	DeleteBook(ctx context.Context, bookID string) error
}

// BookStockSupport defines the inventory counter updates applied while
// persisting receipts.
type BookStockSupport interface {
	// ApplyStockDeltas adjusts copies_in_stock and total_sold for multiple
	// books within a transaction. A positive delta means units sold: stock
	// is decremented and total sold incremented by the delta; a negative
	// delta reverts units. Each per-book update is a single conditionless
	// increment.
	ApplyStockDeltas(ctx context.Context, tx pgx.Tx, soldDeltas map[string]int64, userID string) error
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookWriter
	BookStockSupport
}
