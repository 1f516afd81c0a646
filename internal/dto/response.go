package dto

// StatusResponse is the uniform envelope for endpoints that only report an
// outcome. Every endpoint in the API carries the status flag; failures add a
// human-readable message.
type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the envelope for failed requests. NotFoundIDs is populated
// only when a receipt request references unknown books.
type ErrorResponse struct {
	Status      bool     `json:"status"`
	Message     string   `json:"message"`
	NotFoundIDs []string `json:"notFoundIds,omitempty"`
}

// OK builds a success envelope with an optional message.
func OK(message string) StatusResponse {
	return StatusResponse{Status: true, Message: message}
}

// Err builds a failure envelope.
func Err(message string) ErrorResponse {
	return ErrorResponse{Status: false, Message: message}
}
