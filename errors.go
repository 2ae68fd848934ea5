package priceholder

import "errors"

var (
	// ErrInvalidKey is returned when a symbol fails validation, e.g. it is
	// empty. No entry is created for an invalid symbol.
	ErrInvalidKey = errors.New("priceholder: invalid key")

	// ErrClosed is returned by every operation once the underlying store has
	// been closed. Goroutines blocked in NextPrice are woken with this error.
	ErrClosed = errors.New("priceholder: closed")
)
