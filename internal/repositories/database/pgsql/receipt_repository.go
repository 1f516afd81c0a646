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

type PgxReceiptRepository struct {
	BaseRepository
	bookRepo portsrepo.BookRepositoryFacade
}

// newPgxReceiptRepository creates a new repository for receipt data. The book
// repository is injected so inventory adjustments run inside the same
// database transaction as the receipt writes.
func newPgxReceiptRepository(pool *pgxpool.Pool, bookRepo portsrepo.BookRepositoryFacade) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{
		BaseRepository: BaseRepository{Pool: pool},
		bookRepo:       bookRepo,
	}
}

// Ensure PgxReceiptRepository implements portsrepo.ReceiptRepositoryFacade
var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

// SaveReceipt persists a new receipt with its line items and applies the
// inventory effect of the sale, all within a single DB transaction.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt, soldDeltas map[string]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits successfully
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelReceipt(receipt)
	query := `
		INSERT INTO receipts (receipt_id, customer_id, total_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		m.ReceiptID,
		m.CustomerID,
		m.TotalPrice,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt %s: %w", m.ReceiptID, err)
	}

	if err := r.insertItems(ctx, tx, receipt); err != nil {
		return err
	}

	if err := r.bookRepo.ApplyStockDeltas(ctx, tx, soldDeltas, receipt.CreatedBy); err != nil {
		return fmt.Errorf("failed to apply stock changes for receipt %s: %w", receipt.ReceiptID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateReceipt replaces the receipt's customer, total and line items and
// applies the net inventory effect of the edit in one DB transaction.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt, soldDeltas map[string]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelReceipt(receipt)
	query := `
		UPDATE receipts
		SET customer_id = $1, total_price = $2, last_updated_at = $3, last_updated_by = $4
		WHERE receipt_id = $5;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CustomerID,
		m.TotalPrice,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ReceiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt %s: %w", m.ReceiptID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Replace the line item set wholesale; the edit carries the full new set.
	if _, err := tx.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id = $1;`, m.ReceiptID); err != nil {
		return fmt.Errorf("failed to clear receipt items for %s: %w", m.ReceiptID, err)
	}

	if err := r.insertItems(ctx, tx, receipt); err != nil {
		return err
	}

	if err := r.bookRepo.ApplyStockDeltas(ctx, tx, soldDeltas, receipt.LastUpdatedBy); err != nil {
		return fmt.Errorf("failed to apply stock changes for receipt %s: %w", receipt.ReceiptID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxReceiptRepository) insertItems(ctx context.Context, tx pgx.Tx, receipt domain.Receipt) error {
	items := mapping.ToModelReceiptItems(receipt.ReceiptID, receipt.Items)
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO receipt_items (receipt_id, line_no, book_id, quantity)
		VALUES ($1, $2, $3, $4);
	`
	for _, item := range items {
		batch.Queue(query, item.ReceiptID, item.LineNo, item.BookID, item.Quantity)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert receipt item: %w", err)
		}
	}

	return nil
}

func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `
		SELECT receipt_id, customer_id, total_price, created_at, created_by, last_updated_at, last_updated_by
		FROM receipts
		WHERE receipt_id = $1;
	`
	var m models.Receipt
	err := r.Pool.QueryRow(ctx, query, receiptID).Scan(
		&m.ReceiptID,
		&m.CustomerID,
		&m.TotalPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt by ID %s: %w", receiptID, err)
	}

	items, err := r.findItems(ctx, []string{receiptID})
	if err != nil {
		return nil, err
	}

	receipt := mapping.ToDomainReceipt(m, items[receiptID])
	return &receipt, nil
}

func (r *PgxReceiptRepository) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	query := `
		SELECT receipt_id, customer_id, total_price, created_at, created_by, last_updated_at, last_updated_by
		FROM receipts
		ORDER BY created_at DESC, receipt_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	headers := []models.Receipt{}
	ids := []string{}
	for rows.Next() {
		var m models.Receipt
		err := rows.Scan(
			&m.ReceiptID,
			&m.CustomerID,
			&m.TotalPrice,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		headers = append(headers, m)
		ids = append(ids, m.ReceiptID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", rows.Err())
	}

	itemsByReceipt, err := r.findItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	receipts := make([]domain.Receipt, len(headers))
	for i, h := range headers {
		receipts[i] = mapping.ToDomainReceipt(h, itemsByReceipt[h.ReceiptID])
	}
	return receipts, nil
}

// findItems loads line items for the given receipts, keyed by receipt ID and
// ordered by line_no within each receipt.
func (r *PgxReceiptRepository) findItems(ctx context.Context, receiptIDs []string) (map[string][]models.ReceiptItem, error) {
	result := make(map[string][]models.ReceiptItem, len(receiptIDs))
	if len(receiptIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT receipt_id, line_no, book_id, quantity
		FROM receipt_items
		WHERE receipt_id = ANY($1)
		ORDER BY receipt_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, receiptIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ReceiptItem
		if err := rows.Scan(&item.ReceiptID, &item.LineNo, &item.BookID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan receipt item row: %w", err)
		}
		result[item.ReceiptID] = append(result[item.ReceiptID], item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating receipt item rows: %w", rows.Err())
	}

	return result, nil
}
