package domain

import "errors"

// Sentinel errors shared across layers. Adapters map them to transport codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
