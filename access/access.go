// Package access implements the two-step capability handshake that gates
// encrypted-payload disclosure.
//
// A DecryptionRequest is minted for a buyer at purchase time and is
// single-use: exchanging it (Grant) destroys it and mints a durable
// KeyCapability, the sole credential accepted when disclosing the payload.
// Both tokens are bearer credentials: possession is the authorization
// signal. Because Go values can be copied freely, single-use and
// forgery-resistance are enforced through a per-product Table that tracks
// outstanding request tokens and issued capability tokens; a token absent
// from the table is rejected regardless of its field contents.
package access

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/poipnet/libpoip-go/identity"
)

// DecryptionRequest asserts "this buyer purchased and is owed a capability".
// Consumed exactly once by Grant.
type DecryptionRequest struct {
	Token     uuid.UUID
	ProductID uuid.UUID
	Buyer     identity.Principal
}

// KeyCapability grants payload disclosure for a specific product. Durable
// and transferable; many may exist per product, one per successful grant.
type KeyCapability struct {
	Token     uuid.UUID
	ProductID uuid.UUID
}

// Table tracks the outstanding requests and issued capabilities of a single
// product. Not safe for concurrent use; callers serialize per product.
type Table struct {
	requests map[uuid.UUID]identity.Principal
	caps     map[uuid.UUID]struct{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		requests: make(map[uuid.UUID]identity.Principal),
		caps:     make(map[uuid.UUID]struct{}),
	}
}

// Issue mints a new decryption request for buyer and records it as
// outstanding.
func (t *Table) Issue(productID uuid.UUID, buyer identity.Principal) DecryptionRequest {
	req := DecryptionRequest{
		Token:     uuid.New(),
		ProductID: productID,
		Buyer:     buyer,
	}
	t.requests[req.Token] = buyer
	return req
}

// Grant exchanges an outstanding request for a key capability. The request
// is destroyed: a second grant of the same request fails. Fails if the
// request was never issued by this table, targets a different product, or
// is presented by someone other than its buyer.
func (t *Table) Grant(productID uuid.UUID, req DecryptionRequest, caller identity.Principal) (KeyCapability, error) {
	if req.ProductID != productID {
		return KeyCapability{}, fmt.Errorf("%w: request product mismatch", ErrInvalidAccessCredential)
	}
	buyer, ok := t.requests[req.Token]
	if !ok {
		return KeyCapability{}, fmt.Errorf("%w: unknown or consumed request", ErrInvalidAccessCredential)
	}
	if buyer != caller || req.Buyer != caller {
		return KeyCapability{}, fmt.Errorf("%w: request buyer mismatch", ErrInvalidAccessCredential)
	}

	delete(t.requests, req.Token)
	cap := KeyCapability{Token: uuid.New(), ProductID: productID}
	t.caps[cap.Token] = struct{}{}
	return cap, nil
}

// Verify checks that cap was issued by this table for productID.
func (t *Table) Verify(productID uuid.UUID, cap KeyCapability) error {
	if cap.ProductID != productID {
		return fmt.Errorf("%w: capability product mismatch", ErrInvalidAccessCredential)
	}
	if _, ok := t.caps[cap.Token]; !ok {
		return fmt.Errorf("%w: unknown capability", ErrInvalidAccessCredential)
	}
	return nil
}

// Snapshot returns the table contents for persistence.
func (t *Table) Snapshot() (requests map[uuid.UUID]identity.Principal, caps []uuid.UUID) {
	requests = make(map[uuid.UUID]identity.Principal, len(t.requests))
	for k, v := range t.requests {
		requests[k] = v
	}
	caps = make([]uuid.UUID, 0, len(t.caps))
	for k := range t.caps {
		caps = append(caps, k)
	}
	return requests, caps
}

// RestoreTable rebuilds a table from persisted contents.
func RestoreTable(requests map[uuid.UUID]identity.Principal, caps []uuid.UUID) *Table {
	t := NewTable()
	for k, v := range requests {
		t.requests[k] = v
	}
	for _, k := range caps {
		t.caps[k] = struct{}{}
	}
	return t
}
