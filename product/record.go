package product

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/poipnet/libpoip-go/identity"
)

// PurchaseRecord is the durable per-purchase receipt and the authorization
// token for compensation claims. A buyer who purchases twice holds two
// independent records. The record is a bearer credential owned by the
// buyer; it is never stored by the registry.
type PurchaseRecord struct {
	Buyer               identity.Principal
	ProductID           uuid.UUID
	PaidAmount          uint64 // fixed at the purchase-time price
	CompensationClaimed uint64 // monotonic, snaps to current entitlement on claim
}

const recordSize = identity.PrincipalSize + 16 + 8 + 8 // buyer(20) + product(16) + paid(8) + claimed(8)

// SerializeRecord encodes a PurchaseRecord to binary format.
func SerializeRecord(rec *PurchaseRecord) []byte {
	buf := make([]byte, recordSize)
	copy(buf[0:20], rec.Buyer[:])
	copy(buf[20:36], rec.ProductID[:])
	binary.BigEndian.PutUint64(buf[36:44], rec.PaidAmount)
	binary.BigEndian.PutUint64(buf[44:52], rec.CompensationClaimed)
	return buf
}

// DeserializeRecord decodes binary data into a PurchaseRecord.
func DeserializeRecord(data []byte) (*PurchaseRecord, error) {
	if len(data) != recordSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidRecordData, recordSize, len(data))
	}
	rec := &PurchaseRecord{}
	copy(rec.Buyer[:], data[0:20])
	copy(rec.ProductID[:], data[20:36])
	rec.PaidAmount = binary.BigEndian.Uint64(data[36:44])
	rec.CompensationClaimed = binary.BigEndian.Uint64(data[44:52])
	return rec, nil
}
