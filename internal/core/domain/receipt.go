package domain

import (
	"github.com/shopspring/decimal"
)

// ReceiptItem is a single line within a receipt, referencing one book.
type ReceiptItem struct {
	BookID   string `json:"bookID"`   // FK -> Book.bookID (Not Null)
	Quantity int64  `json:"quantity"` // Units sold on this line, >= 1
}

// Receipt represents a sale of one or more books to a customer.
// Its identity is immutable; its content (customer, items, total) is
// replaced wholesale by the edit operation.
type Receipt struct {
	ReceiptID  string          `json:"receiptID"`  // Primary Key (UUID)
	CustomerID string          `json:"customerID"` // FK -> Customer.customerID (Not Null)
	Items      []ReceiptItem   `json:"items"`      // Ordered line items
	TotalPrice decimal.Decimal `json:"totalPrice"` // Sum of price * quantity at last (re)computation
	AuditFields
}
