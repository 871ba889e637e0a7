// Package funds provides the fungible-balance primitives used for payment
// capture, withdrawal, and compensation payout.
//
// A Balance is the caller-side primitive: it supports querying its value,
// splitting off an exact amount, and merging another balance in. A Ledger is
// the per-product accumulating balance that captures buyer payments. Neither
// type creates or destroys units; every operation moves units between a
// Balance and a Ledger, and a Ledger can never go negative.
package funds

import "fmt"

// Balance is a fungible amount held by a caller.
type Balance struct {
	amount uint64
}

// NewBalance creates a balance holding the given amount.
func NewBalance(amount uint64) *Balance {
	return &Balance{amount: amount}
}

// Value returns the amount currently held.
func (b *Balance) Value() uint64 { return b.amount }

// SplitOff removes exactly amount units from b and returns them as a new
// balance. The remainder stays with b.
func (b *Balance) SplitOff(amount uint64) (*Balance, error) {
	if amount > b.amount {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, amount, b.amount)
	}
	b.amount -= amount
	return &Balance{amount: amount}, nil
}

// Merge moves all units from other into b, leaving other empty.
func (b *Balance) Merge(other *Balance) {
	b.amount += other.amount
	other.amount = 0
}

// Ledger is a per-product accumulating balance.
type Ledger struct {
	balance uint64
}

// Balance returns the units currently held by the ledger.
func (l *Ledger) Balance() uint64 { return l.balance }

// Credit moves all units from b into the ledger, leaving b empty.
func (l *Ledger) Credit(b *Balance) {
	l.balance += b.amount
	b.amount = 0
}

// Debit removes exactly amount units from the ledger and returns them as a
// balance.
func (l *Ledger) Debit(amount uint64) (*Balance, error) {
	if amount > l.balance {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, amount, l.balance)
	}
	l.balance -= amount
	return &Balance{amount: amount}, nil
}

// Restore sets the ledger balance directly. Used when reconstructing a
// product aggregate from a persisted snapshot; not part of the operation
// surface.
func (l *Ledger) Restore(balance uint64) {
	l.balance = balance
}
