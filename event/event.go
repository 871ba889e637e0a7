// Package event defines the notification events emitted by product
// operations and the sinks that consume them.
//
// Emission is fire-and-forget: the core never waits for acknowledgment, and
// a nil sink is treated as a discard. External indexers consume events from
// a production sink; tests assert on a MemorySink.
package event

import (
	"github.com/google/uuid"

	"github.com/poipnet/libpoip-go/identity"
)

// Kind identifies the event type.
type Kind string

const (
	// KindPurchase fires once per successful purchase.
	KindPurchase Kind = "purchase"

	// KindPublicized fires exactly once, when a product reaches its max count.
	KindPublicized Kind = "publicized"

	// KindCompensationClaimed fires once per successful compensation claim.
	KindCompensationClaimed Kind = "compensation_claimed"
)

// Event is a single notification record.
type Event struct {
	Kind      Kind
	ProductID uuid.UUID
	Principal identity.Principal // buyer for purchase/claim; zero for publicized
	Amount    uint64             // price paid or amount claimed; 0 for publicized
}

// Sink consumes emitted events.
type Sink interface {
	Record(Event)
}

// Emit records e on sink if sink is non-nil.
func Emit(sink Sink, e Event) {
	if sink != nil {
		sink.Record(e)
	}
}
