package product

import (
	"github.com/google/uuid"

	"github.com/poipnet/libpoip-go/access"
	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/identity"
)

// Snapshot is the persistable form of a Product. All fields are exported
// for gob encoding; the registry's bolt store reads and writes snapshots,
// never live aggregates.
type Snapshot struct {
	ID             uuid.UUID
	Creator        identity.Principal
	Price          uint64
	GoalCount      uint64
	MaxCount       uint64
	Metadata       string
	StoragePointer string
	Payload        []byte
	BuyerCount     uint64
	Publicized     bool
	Balance        uint64
	OpenRequests   map[uuid.UUID]identity.Principal
	IssuedCaps     []uuid.UUID
}

// Snapshot captures the product's full state.
func (p *Product) Snapshot() *Snapshot {
	requests, caps := p.access.Snapshot()
	payload := make([]byte, len(p.payload))
	copy(payload, p.payload)
	return &Snapshot{
		ID:             p.id,
		Creator:        p.creator,
		Price:          p.price,
		GoalCount:      p.goalCount,
		MaxCount:       p.maxCount,
		Metadata:       p.metadata,
		StoragePointer: p.storagePointer,
		Payload:        payload,
		BuyerCount:     p.buyerCount,
		Publicized:     p.publicized,
		Balance:        p.ledger.Balance(),
		OpenRequests:   requests,
		IssuedCaps:     caps,
	}
}

// FromSnapshot reconstructs a product aggregate. sink receives the revived
// product's notifications; nil discards them.
func FromSnapshot(s *Snapshot, sink event.Sink) *Product {
	p := &Product{
		id:             s.ID,
		creator:        s.Creator,
		price:          s.Price,
		goalCount:      s.GoalCount,
		maxCount:       s.MaxCount,
		metadata:       s.Metadata,
		storagePointer: s.StoragePointer,
		payload:        s.Payload,
		buyerCount:     s.BuyerCount,
		publicized:     s.Publicized,
		access:         access.RestoreTable(s.OpenRequests, s.IssuedCaps),
		sink:           sink,
	}
	p.ledger.Restore(s.Balance)
	return p
}
