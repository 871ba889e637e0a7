package product

import (
	"fmt"

	"github.com/poipnet/libpoip-go/access"
	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/funds"
	"github.com/poipnet/libpoip-go/identity"
)

// Purchase admits one purchase by buyer, drawing exactly the product price
// from payment (excess stays with the caller). It mints the buyer's
// purchase record and decryption request, emits a purchase notification,
// and, when the buyer count reaches the max count, closes the funding phase
// in the same operation.
//
// Fails with ErrAlreadyPublicized after the funding phase has closed and
// with ErrInsufficientPayment when payment cannot cover the price; either
// failure leaves every counter, balance, and credential unchanged.
func (p *Product) Purchase(payment *funds.Balance, buyer identity.Principal) (*PurchaseRecord, access.DecryptionRequest, error) {
	if p.publicized {
		return nil, access.DecryptionRequest{}, fmt.Errorf("%w: purchase rejected", ErrAlreadyPublicized)
	}
	if payment.Value() < p.price {
		return nil, access.DecryptionRequest{}, fmt.Errorf("%w: need %d, offered %d",
			ErrInsufficientPayment, p.price, payment.Value())
	}

	captured, err := payment.SplitOff(p.price)
	if err != nil {
		// Unreachable after the value check; kept so a funds regression
		// cannot silently admit an unpaid purchase.
		return nil, access.DecryptionRequest{}, fmt.Errorf("%w: %w", ErrInsufficientPayment, err)
	}

	p.buyerCount++
	p.ledger.Credit(captured)

	record := &PurchaseRecord{
		Buyer:      buyer,
		ProductID:  p.id,
		PaidAmount: p.price,
	}
	request := p.access.Issue(p.id, buyer)

	event.Emit(p.sink, event.Event{
		Kind:      event.KindPurchase,
		ProductID: p.id,
		Principal: buyer,
		Amount:    p.price,
	})

	if p.buyerCount >= p.maxCount {
		if err := p.publicize(); err != nil {
			return nil, access.DecryptionRequest{}, err
		}
	}

	return record, request, nil
}
