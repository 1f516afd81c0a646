package domain

// Customer represents a buyer identity referenced by receipts.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Phone      string `json:"phone"` // Unique across all customers
	AuditFields
}
