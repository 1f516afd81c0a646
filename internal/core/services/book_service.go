package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mshaarawy/bookstore_backoffice/internal/apperrors"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	portssvc "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/services"
	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
	"github.com/mshaarawy/bookstore_backoffice/internal/middleware"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrBookExists    = errors.New("book already exists")
	ErrNothingToSave = errors.New("no fields changed")
	// ErrStockReduction rejects stock edits below the current level; stock
	// only drops through receipts so sales stay accounted for.
	ErrStockReduction = errors.New("cannot reduce copies in stock below the existing value")
)

// bookService provides catalog management for books.
type bookService struct {
	bookRepo portsrepo.BookRepositoryFacade
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo portsrepo.BookRepositoryFacade) portssvc.BookSvcFacade {
	return &bookService{bookRepo: bookRepo}
}

// Ensure bookService implements the portssvc.BookSvcFacade interface
var _ portssvc.BookSvcFacade = (*bookService)(nil)

// CreateBook persists a new book after checking the ISBN is not taken.
func (s *bookService) CreateBook(ctx context.Context, req dto.CreateBookRequest, creatorUserID string) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Check first for a clean duplicate message; the unique index on isbn
	// still catches races.
	_, err := s.bookRepo.FindBookByISBN(ctx, req.ISBN)
	if err == nil {
		return nil, ErrBookExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check ISBN uniqueness: %w", err)
	}

	now := time.Now()
	book := domain.Book{
		BookID:        uuid.NewString(),
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Price:         req.Price,
		CopiesInStock: req.CopiesInStock,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrBookExists
		}
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	logger.Info("Book created", slog.String("book_id", book.BookID), slog.String("isbn", book.ISBN))
	return &book, nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %s: %w", bookID, err)
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.bookRepo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *bookService) ListBestsellers(ctx context.Context, limit int) ([]domain.Book, error) {
	books, err := s.bookRepo.ListBestsellers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bestsellers: %w", err)
	}
	return books, nil
}

// UpdateBook applies the provided fields to an existing book. It fails with
// ErrNothingToSave when no provided field differs from the stored value, and
// refuses stock levels that contradict recorded sales.
func (s *bookService) UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, requestingUserID string) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book %s: %w", bookID, err)
	}

	// The catalog never forgets sold copies; stock can only be corrected upward.
	if req.CopiesInStock != nil && *req.CopiesInStock < book.CopiesInStock {
		return nil, ErrStockReduction
	}

	changed := false
	if req.Title != nil && *req.Title != book.Title {
		book.Title = *req.Title
		changed = true
	}
	if req.Author != nil && *req.Author != book.Author {
		book.Author = *req.Author
		changed = true
	}
	if req.ISBN != nil && *req.ISBN != book.ISBN {
		if _, err := s.bookRepo.FindBookByISBN(ctx, *req.ISBN); err == nil {
			return nil, ErrBookExists
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check ISBN uniqueness: %w", err)
		}
		book.ISBN = *req.ISBN
		changed = true
	}
	if req.Price != nil && !req.Price.Equal(book.Price) {
		book.Price = *req.Price
		changed = true
	}
	if req.CopiesInStock != nil && *req.CopiesInStock != book.CopiesInStock {
		book.CopiesInStock = *req.CopiesInStock
		changed = true
	}

	if !changed {
		return nil, ErrNothingToSave
	}

	book.LastUpdatedAt = time.Now()
	book.LastUpdatedBy = requestingUserID

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrBookExists
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book %s: %w", bookID, err)
	}

	logger.Info("Book updated", slog.String("book_id", bookID))
	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, bookID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.bookRepo.DeleteBook(ctx, bookID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to delete book %s: %w", bookID, err)
	}

	logger.Info("Book deleted", slog.String("book_id", bookID))
	return nil
}
