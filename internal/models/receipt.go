package models

import (
	"github.com/shopspring/decimal"
)

// Receipt represents a sale row in the receipts table.
// Line items live in receipt_items and are loaded separately.
type Receipt struct {
	ReceiptID   string          `db:"receipt_id"`
	CustomerID  string          `db:"customer_id"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	AuditFields                 // Embed common audit fields
}

// ReceiptItem represents one line of a receipt in the receipt_items table.
// LineNo preserves the order the items were submitted in.
type ReceiptItem struct {
	ReceiptID string `db:"receipt_id"`
	LineNo    int    `db:"line_no"`
	BookID    string `db:"book_id"`
	Quantity  int64  `db:"quantity"` // CHECK >= 1 at the schema level
}
