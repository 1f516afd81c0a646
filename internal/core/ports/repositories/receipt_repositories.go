package repositories

import (
	"context"

	"github.com/mshaarawy/bookstore_backoffice/internal/core/domain"
)

// ReceiptReader defines read operations for receipt data
type ReceiptReader interface {
	// FindReceiptByID retrieves a receipt with its line items in order.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// ListReceipts retrieves all receipts with their line items, newest first.
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)
}

// ReceiptWriter defines write operations for receipt data. Both methods
// apply the given per-book sold deltas to the book ledger inside the same
// database transaction as the receipt row changes.
type ReceiptWriter interface {
	// SaveReceipt persists a new receipt with its line items and applies
	// the inventory effect of the sale.
	SaveReceipt(ctx context.Context, receipt domain.Receipt, soldDeltas map[string]int64) error

	// UpdateReceipt replaces a receipt's customer, line items and total,
	// applying the net inventory effect of the edit (reversal of the old
	// items plus application of the new ones).
	UpdateReceipt(ctx context.Context, receipt domain.Receipt, soldDeltas map[string]int64) error
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}
