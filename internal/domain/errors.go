package domain

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("candidate index out of range")
	ErrResultNotFound    = errors.New("extraction result not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrEmptyName         = errors.New("candidate name must not be empty")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedExport = errors.New("unsupported export format")
)
