package access

import "errors"

var (
	// ErrInvalidAccessCredential indicates a request or capability whose
	// product, buyer, or token does not match what was issued.
	ErrInvalidAccessCredential = errors.New("access: invalid access credential")

	// ErrInvalidTokenData indicates a malformed serialized token.
	ErrInvalidTokenData = errors.New("access: invalid token data")
)
