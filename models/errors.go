package models

import "errors"

// Shared error taxonomy. Services wrap these with context via fmt.Errorf and
// %w; the HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
	ErrPriceParse   = errors.New("price not parseable")
)
