package service

import "errors"

// Callers match these with errors.Is; the wrapped text carries the detail.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("invalid credentials")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)
