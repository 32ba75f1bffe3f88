package services

import "errors"

// Failure taxonomy shared by all services. Controllers translate these with
// errors.Is into HTTP statuses; Forbidden is kept distinct from NotFound so
// callers cannot probe record existence through permission errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidState = errors.New("operation not allowed in current status")
	ErrForbidden    = errors.New("operation not permitted")
	ErrValidation   = errors.New("validation failed")
)
