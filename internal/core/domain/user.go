package domain

// User represents a staff member of the back office in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose the hash in JSON responses
	AuditFields
}
