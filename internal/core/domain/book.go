package domain

import (
	"github.com/shopspring/decimal"
)

// Book represents a title in the store's ledger within the core domain.
// This is the primary representation used by services.
type Book struct {
	BookID        string          `json:"bookID"`        // Primary Key (UUID)
	Title         string          `json:"title"`         // Display title
	Author        string          `json:"author"`        // Author name
	ISBN          string          `json:"isbn"`          // Unique, 13 characters
	Price         decimal.Decimal `json:"price"`         // Non-negative unit price
	CopiesInStock int64           `json:"copiesInStock"` // Unsold units currently available, never negative
	TotalSold     int64           `json:"totalSold"`     // Cumulative units sold across all receipts
	AuditFields                   // Embed CreatedAt, CreatedBy, etc.
}
