package dto

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse is the generic {success, message} envelope used by
// endpoints whose failures must never leak internal errors.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
