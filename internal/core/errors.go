package core

import "errors"

// Typed outcomes of the index layer. The API layer maps these to HTTP
// status codes with errors.Is; anything else is an internal error and
// never reaches the client verbatim.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrNotAvailable = errors.New("item is not available")
	ErrBusy         = errors.New("resource busy")
)
