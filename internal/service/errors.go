// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Service errors. The HTTP layer maps these onto status codes:
// authentication 401, ownership 403, absence 404, duplicates 409.
var (
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("not the owner of this resource")
	ErrEventNotFound      = errors.New("event not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError reports the first offending input field. It maps to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// requiredField builds the validation error for a missing field.
func requiredField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// invalidField builds the validation error for a malformed field.
func invalidField(field, reason string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s %s", field, reason),
	}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
