package registry

import "errors"

var (
	// ErrProductNotFound indicates no product exists for the given ID.
	ErrProductNotFound = errors.New("registry: product not found")

	// ErrClosed indicates an operation on a closed registry.
	ErrClosed = errors.New("registry: closed")
)
