package models

import (
	"github.com/shopspring/decimal"
)

// Book represents a title row in the books table.
type Book struct {
	BookID        string          `db:"book_id"`
	Title         string          `db:"title"`
	Author        string          `db:"author"`
	ISBN          string          `db:"isbn"` // Unique
	Price         decimal.Decimal `db:"price"`
	CopiesInStock int64           `db:"copies_in_stock"` // CHECK >= 0 at the schema level
	TotalSold     int64           `db:"total_sold"`
	AuditFields                   // Embed common audit fields
}
