package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeValidation         = "validation_failed"
	ErrCodeInternal           = "internal_error"
)
