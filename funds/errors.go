package funds

import "errors"

var (
	// ErrInsufficientFunds indicates a split or debit larger than the held amount.
	ErrInsufficientFunds = errors.New("funds: insufficient funds")
)
