package models

// User represents a staff member row in the users table.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"` // Unique
	PasswordHash string `db:"password_hash"`
	AuditFields         // Embed common audit fields
}
