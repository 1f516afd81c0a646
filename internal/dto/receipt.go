package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptItemRequest is one requested line of a receipt.
type ReceiptItemRequest struct {
	BookID   string `json:"bookId" binding:"required,uuid"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

// CreateReceiptRequest defines the body for both receipt creation and edit:
// the edit operation replaces the entire line item set.
type CreateReceiptRequest struct {
	CustomerID string               `json:"customerId" binding:"required,uuid"`
	Books      []ReceiptItemRequest `json:"books" binding:"required,min=1,dive"`
}

// ReceiptItemResponse is one line of a receipt enriched with the book's
// title and price as captured at validation time.
type ReceiptItemResponse struct {
	BookID   string          `json:"bookId"`
	Quantity int64           `json:"quantity"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
}

// ReceiptResponse is the denormalized view of a receipt returned to callers.
type ReceiptResponse struct {
	ID           string                `json:"id"`
	CustomerName string                `json:"customerName"`
	BookItems    []ReceiptItemResponse `json:"bookItems"`
	TotalPrice   decimal.Decimal       `json:"totalPrice"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ReceiptEnvelope wraps a single receipt in the standard envelope.
type ReceiptEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message,omitempty"`
	Receipt ReceiptResponse `json:"receipt"`
}

// ListReceiptsResponse wraps the list of receipts in the standard envelope.
type ListReceiptsResponse struct {
	Status   bool              `json:"status"`
	Receipts []ReceiptResponse `json:"receipts"`
}
