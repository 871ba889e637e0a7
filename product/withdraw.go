package product

import (
	"fmt"

	"github.com/poipnet/libpoip-go/funds"
	"github.com/poipnet/libpoip-go/identity"
)

// Withdraw moves exactly amount units from the product's funds ledger into
// dest. Only the creator may withdraw, each call is capped at
// price x max_count (the theoretical maximum revenue), and the ledger must
// cover the amount. No buyer-facing state changes.
//
// The cap bounds each call, not the cumulative total across calls: repeated
// withdrawals each under the cap can together exceed it, limited only by
// the actual ledger balance.
func (p *Product) Withdraw(caller identity.Principal, amount uint64, dest *funds.Balance) error {
	if caller != p.creator {
		return fmt.Errorf("%w: withdrawal rejected", ErrNotCreator)
	}
	cap := p.price * p.maxCount
	if amount > cap {
		return fmt.Errorf("%w: %d exceeds %d", ErrOverWithdrawCap, amount, cap)
	}
	if amount > p.ledger.Balance() {
		return fmt.Errorf("%w: %d requested, %d held", ErrInsufficientLedgerBalance, amount, p.ledger.Balance())
	}

	out, err := p.ledger.Debit(amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientLedgerBalance, err)
	}
	dest.Merge(out)
	return nil
}
