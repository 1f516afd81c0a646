package services

import (
	"context"

	"github.com/mshaarawy/bookstore_backoffice/internal/dto"
)

// ReceiptReaderSvc defines read operations for receipt data
type ReceiptReaderSvc interface {
	// GetReceiptByID retrieves a receipt enriched with customer and book details.
	GetReceiptByID(ctx context.Context, receiptID string) (*dto.ReceiptResponse, error)

	// ListReceipts retrieves all receipts enriched with customer and book
	// details, newest first.
	ListReceipts(ctx context.Context) ([]dto.ReceiptResponse, error)
}

// ReceiptWriterSvc defines write operations for receipt data
type ReceiptWriterSvc interface {
	// CreateReceipt validates stock, persists the receipt and adjusts book
	// inventory in a single transaction.
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, creatorUserID string) (*dto.ReceiptResponse, error)

	// UpdateReceipt replaces a receipt's line items and applies the net
	// inventory change in a single transaction.
	UpdateReceipt(ctx context.Context, receiptID string, req dto.CreateReceiptRequest, requestingUserID string) (*dto.ReceiptResponse, error)
}

// ReceiptSvcFacade combines all receipt-related service interfaces
type ReceiptSvcFacade interface {
	ReceiptReaderSvc
	ReceiptWriterSvc
}
