// Package product implements the crowdfunded knowledge-product aggregate:
// creation invariants, purchase admission and fund capture, the
// publicization transition, creator withdrawal, and the pro-rata
// compensation engine.
//
// A Product owns its configuration, counters, publicized flag, opaque
// encrypted payload, funds ledger, and access-control table. Methods are
// all-or-nothing: a failed precondition mutates nothing. A Product is not
// safe for concurrent use; callers serialize operations per product (the
// registry package does this).
package product

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/poipnet/libpoip-go/access"
	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/funds"
	"github.com/poipnet/libpoip-go/identity"
)

// Product is the purchasable knowledge-asset aggregate.
type Product struct {
	id             uuid.UUID
	creator        identity.Principal
	price          uint64
	goalCount      uint64
	maxCount       uint64
	metadata       string
	storagePointer string
	payload        []byte // opaque encrypted bytes, immutable after creation

	buyerCount uint64
	publicized bool
	ledger     funds.Ledger
	access     *access.Table
	sink       event.Sink
}

// CreateParams holds the inputs to Create.
type CreateParams struct {
	Creator        identity.Principal
	Price          uint64 // unit price, > 0
	GoalCount      uint64 // funding goal, > 0
	MaxCount       uint64 // purchase cap, >= GoalCount
	Metadata       string
	StoragePointer string
	Payload        []byte // encrypted payload, opaque to this library
}

// Create validates params and returns a new Active product with zero
// buyers, zero balance, and publicized=false. sink receives the product's
// notifications; nil discards them.
func Create(params CreateParams, sink event.Sink) (*Product, error) {
	if params.Price == 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrInvalidGoalConfiguration)
	}
	if params.GoalCount == 0 {
		return nil, fmt.Errorf("%w: goal count must be > 0", ErrInvalidGoalConfiguration)
	}
	if params.MaxCount < params.GoalCount {
		return nil, fmt.Errorf("%w: max count %d below goal count %d",
			ErrInvalidGoalConfiguration, params.MaxCount, params.GoalCount)
	}
	// price*maxCount is the withdrawal cap; reject configurations where it
	// would overflow uint64.
	if params.Price > math.MaxUint64/params.MaxCount {
		return nil, fmt.Errorf("%w: price %d x max count %d overflows",
			ErrInvalidGoalConfiguration, params.Price, params.MaxCount)
	}

	payload := make([]byte, len(params.Payload))
	copy(payload, params.Payload)

	return &Product{
		id:             uuid.New(),
		creator:        params.Creator,
		price:          params.Price,
		goalCount:      params.GoalCount,
		maxCount:       params.MaxCount,
		metadata:       params.Metadata,
		storagePointer: params.StoragePointer,
		payload:        payload,
		access:         access.NewTable(),
		sink:           sink,
	}, nil
}

// ID returns the product identifier.
func (p *Product) ID() uuid.UUID { return p.id }

// Creator returns the product's creator.
func (p *Product) Creator() identity.Principal { return p.creator }

// Price returns the unit price.
func (p *Product) Price() uint64 { return p.price }

// GoalCount returns the funding goal.
func (p *Product) GoalCount() uint64 { return p.goalCount }

// MaxCount returns the purchase cap.
func (p *Product) MaxCount() uint64 { return p.maxCount }

// BuyerCount returns the number of admitted purchases.
func (p *Product) BuyerCount() uint64 { return p.buyerCount }

// Publicized reports whether the funding phase has closed.
func (p *Product) Publicized() bool { return p.publicized }

// Balance returns the funds ledger balance.
func (p *Product) Balance() uint64 { return p.ledger.Balance() }

// Metadata returns the creator-supplied metadata.
func (p *Product) Metadata() string { return p.metadata }

// StoragePointer returns the external storage address of the payload.
func (p *Product) StoragePointer() string { return p.storagePointer }

// publicize closes the funding phase. Hard error if already publicized:
// a second invocation signals an ordering bug, not a benign retry.
func (p *Product) publicize() error {
	if p.publicized {
		return ErrAlreadyPublicized
	}
	p.publicized = true
	event.Emit(p.sink, event.Event{Kind: event.KindPublicized, ProductID: p.id})
	return nil
}

// GrantKeyAccess exchanges the caller's decryption request for a key
// capability. The request is consumed; a request can be granted at most
// once.
func (p *Product) GrantKeyAccess(req access.DecryptionRequest, caller identity.Principal) (access.KeyCapability, error) {
	return p.access.Grant(p.id, req, caller)
}

// Disclose returns the opaque encrypted payload to a holder of a matching
// key capability. Read-only; callable arbitrarily many times.
func (p *Product) Disclose(cap access.KeyCapability) ([]byte, error) {
	if err := p.access.Verify(p.id, cap); err != nil {
		return nil, err
	}
	return p.payload, nil
}
