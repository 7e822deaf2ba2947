package services

import "errors"

// Error taxonomy shared by the service layer. Handlers map these onto
// HTTP status codes and the machine-readable "kind" field of the
// response envelope.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
	ErrStore        = errors.New("store error")
)
