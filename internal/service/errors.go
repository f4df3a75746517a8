package service

import "errors"

// Failure taxonomy shared by all services. Controllers translate these at
// the HTTP boundary; raw collaborator errors never cross it.
var (
	// ErrValidation marks missing or invalid user input.
	ErrValidation = errors.New("validation failed")
	// ErrCollaborator marks an external service failure (network, quota,
	// model error). Surfaced to users as a generic message.
	ErrCollaborator = errors.New("external collaborator failure")
	// ErrMalformedAIResponse marks a collaborator reply that is not in the
	// expected shape. Handled the same way as ErrCollaborator.
	ErrMalformedAIResponse = errors.New("malformed AI response")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a missing or invalid session, or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
