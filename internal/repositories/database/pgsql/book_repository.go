package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/mshaarawy/bookstore_backoffice/internal/apperrors"
	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
	portsrepo "github.com/mshaarawy/bookstore_backoffice/internal/core/ports/repositories"
	"github.com/mshaarawy/bookstore_backoffice/internal/models"
	"github.com/mshaarawy/bookstore_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBookRepository struct {
	BaseRepository
}

// newPgxBookRepository creates a new repository for book data.
func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBookRepository implements portsrepo.BookRepositoryFacade
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

const bookColumns = `book_id, title, author, isbn, price, copies_in_stock, total_sold, created_at, created_by, last_updated_at, last_updated_by`

func scanBook(row pgx.Row) (*models.Book, error) {
	var m models.Book
	err := row.Scan(
		&m.BookID,
		&m.Title,
		&m.Author,
		&m.ISBN,
		&m.Price,
		&m.CopiesInStock,
		&m.TotalSold,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	m := mapping.ToModelBook(book)
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BookID,
		m.Title,
		m.Author,
		m.ISBN,
		m.Price,
		m.CopiesInStock,
		m.TotalSold,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1;`
	m, err := scanBook(r.Pool.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID %s: %w", bookID, err)
	}
	book := mapping.ToDomainBook(*m)
	return &book, nil
}

func (r *PgxBookRepository) FindBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1;`
	m, err := scanBook(r.Pool.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ISBN %s: %w", isbn, err)
	}
	book := mapping.ToDomainBook(*m)
	return &book, nil
}

// FindBooksByIDs returns the found books keyed by ID. Callers compare the
// result size against the request to detect unknown IDs.
func (r *PgxBookRepository) FindBooksByIDs(ctx context.Context, bookIDs []string) (map[string]domain.Book, error) {
	if len(bookIDs) == 0 {
		return map[string]domain.Book{}, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by IDs: %w", err)
	}
	defer rows.Close()

	books := make(map[string]domain.Book, len(bookIDs))
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books[m.BookID] = mapping.ToDomainBook(*m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	return books, nil
}

func (r *PgxBookRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY created_at DESC, book_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, mapping.ToDomainBook(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	return books, nil
}

// ListBestsellers returns the top selling books. Ties break on book_id so
// the ordering is stable across calls.
func (r *PgxBookRepository) ListBestsellers(ctx context.Context, limit int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT ` + bookColumns + `
		FROM books
		ORDER BY total_sold DESC, book_id
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bestsellers: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, mapping.ToDomainBook(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	return books, nil
}

func (r *PgxBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	m := mapping.ToModelBook(book)
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, price = $4, copies_in_stock = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE book_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Title,
		m.Author,
		m.ISBN,
		m.Price,
		m.CopiesInStock,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BookID,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update book %s: %w", m.BookID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBookRepository) DeleteBook(ctx context.Context, bookID string) error {
	query := `DELETE FROM books WHERE book_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book %s: %w", bookID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyStockDeltas adjusts stock and sales counters for each book inside the
// caller's transaction. A positive delta means units sold: copies_in_stock
// decreases and total_sold increases by that amount; a negative delta reverses
// a sale. The copies_in_stock CHECK constraint rejects the whole transaction
// if any adjustment would drive stock below zero.
func (r *PgxBookRepository) ApplyStockDeltas(ctx context.Context, tx pgx.Tx, soldDeltas map[string]int64, userID string) error {
	if len(soldDeltas) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		UPDATE books
		SET copies_in_stock = copies_in_stock - $1,
		    total_sold = total_sold + $1,
		    last_updated_at = NOW(),
		    last_updated_by = $2
		WHERE book_id = $3;
	`
	for bookID, delta := range soldDeltas {
		if delta == 0 {
			continue
		}
		batch.Queue(query, delta, userID, bookID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		cmdTag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to apply stock delta: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	return nil
}
