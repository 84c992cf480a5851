package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrBackend         = errors.New("backend failure")
	ErrInvalidResponse = errors.New("invalid backend response")
	ErrUnsupportedFile = errors.New("unsupported file")
)
