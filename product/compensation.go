package product

import (
	"fmt"

	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/funds"
	"github.com/poipnet/libpoip-go/identity"
)

// CalculateCompensation computes the current per-buyer entitlement from
// product state:
//
//	0                                                  if buyer_count <= goal_count
//	(buyer_count*price - price*goal_count)/buyer_count otherwise (truncating)
//
// Every buyer sees the same figure at a given buyer count. The value is
// recomputed from current state on every call, so it never decreases for a
// fixed product: buyer_count is monotonic and the formula is non-decreasing
// in buyer_count past the goal. Early buyers' entitlements therefore grow
// as later purchases land.
func CalculateCompensation(p *Product) uint64 {
	if p.buyerCount <= p.goalCount {
		return 0
	}
	totalPaid := p.buyerCount * p.price
	excess := totalPaid - p.price*p.goalCount
	return excess / p.buyerCount
}

// ClaimCompensation pays rec's owner the entitlement accrued since the
// record's last claim, moving it from the funds ledger into dest. The
// record's claimed amount snaps to the newly computed total, so repeated
// claims recover exactly the delta.
//
// Fails with ErrNotBuyer for a caller other than the record's buyer, with
// ErrNothingToClaim when no new entitlement has accrued, and with
// ErrInsufficientLedgerBalance when the ledger cannot cover the delta (an
// accounting fault, distinct from the already-claimed case). Returns the
// amount claimed.
func (p *Product) ClaimCompensation(rec *PurchaseRecord, caller identity.Principal, dest *funds.Balance) (uint64, error) {
	if rec.ProductID != p.id {
		return 0, fmt.Errorf("%w: record product mismatch", ErrInvalidRecordData)
	}
	if caller != rec.Buyer {
		return 0, fmt.Errorf("%w: claim rejected", ErrNotBuyer)
	}

	entitlement := CalculateCompensation(p)
	if entitlement <= rec.CompensationClaimed {
		return 0, fmt.Errorf("%w: entitlement %d already claimed", ErrNothingToClaim, rec.CompensationClaimed)
	}
	delta := entitlement - rec.CompensationClaimed

	if delta > p.ledger.Balance() {
		return 0, fmt.Errorf("%w: claim %d, ledger holds %d", ErrInsufficientLedgerBalance, delta, p.ledger.Balance())
	}
	out, err := p.ledger.Debit(delta)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInsufficientLedgerBalance, err)
	}
	dest.Merge(out)
	rec.CompensationClaimed = entitlement

	event.Emit(p.sink, event.Event{
		Kind:      event.KindCompensationClaimed,
		ProductID: p.id,
		Principal: rec.Buyer,
		Amount:    delta,
	})
	return delta, nil
}
