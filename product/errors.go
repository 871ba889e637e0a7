package product

import "errors"

var (
	// ErrInvalidGoalConfiguration indicates price=0, goal_count=0, or
	// max_count < goal_count at creation.
	ErrInvalidGoalConfiguration = errors.New("product: invalid goal configuration")

	// ErrAlreadyPublicized indicates a purchase or publicization attempt on
	// a product whose funding phase has closed.
	ErrAlreadyPublicized = errors.New("product: already publicized")

	// ErrInsufficientPayment indicates the offered payment is below the
	// product price.
	ErrInsufficientPayment = errors.New("product: insufficient payment")

	// ErrNotCreator indicates a withdrawal by someone other than the
	// product's creator.
	ErrNotCreator = errors.New("product: caller is not the creator")

	// ErrNotBuyer indicates a compensation claim by someone other than the
	// purchase record's buyer.
	ErrNotBuyer = errors.New("product: caller is not the buyer")

	// ErrOverWithdrawCap indicates a withdrawal above price x max_count.
	ErrOverWithdrawCap = errors.New("product: amount exceeds withdrawal cap")

	// ErrInsufficientLedgerBalance indicates the funds ledger cannot cover
	// the requested movement. During a claim this signals an accounting
	// fault, not an already-claimed state.
	ErrInsufficientLedgerBalance = errors.New("product: insufficient ledger balance")

	// ErrNothingToClaim indicates the record's claimed amount already equals
	// the current entitlement.
	ErrNothingToClaim = errors.New("product: nothing new to claim")

	// ErrInvalidRecordData indicates a malformed serialized purchase record.
	ErrInvalidRecordData = errors.New("product: invalid purchase record data")
)
