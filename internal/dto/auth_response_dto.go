package dto

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Status bool   `json:"status"`
	Token  string `json:"token"`
}
