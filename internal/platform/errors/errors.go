package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNotFound         = errors.New("not found")
	ErrInsufficientData = errors.New("insufficient data")
	ErrStorageCorrupt   = errors.New("storage corrupt")
)
