package tracker

import "errors"

var (
	// ErrInvalidInput wraps every validation failure. Nothing was changed.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
