package identity

import "errors"

var (
	// ErrInvalidPrincipal indicates a malformed principal encoding.
	ErrInvalidPrincipal = errors.New("identity: invalid principal")
)
