package api

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error codes used in ErrorResponse.
const (
	codeInvalidRequest = "invalid_request"
	codeInvalidID      = "invalid_id"
	codeNotFound       = "not_found"
	codeServerError    = "server_error"
)
