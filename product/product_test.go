package product

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/identity"
)

func makePrincipal(seed byte) identity.Principal {
	var p identity.Principal
	for i := range p {
		p[i] = seed
	}
	return p
}

var (
	creator = makePrincipal(0x01)
	alice   = makePrincipal(0xAA)
	bob     = makePrincipal(0xBB)
	carol   = makePrincipal(0xCC)
)

// newProduct creates a product with the given economics, failing the test
// on error.
func newProduct(t *testing.T, price, goal, max uint64, sink event.Sink) *Product {
	t.Helper()
	p, err := Create(CreateParams{
		Creator:        creator,
		Price:          price,
		GoalCount:      goal,
		MaxCount:       max,
		Metadata:       "test asset",
		StoragePointer: "deadbeef",
		Payload:        []byte("opaque ciphertext"),
	}, sink)
	require.NoError(t, err)
	return p
}

func TestCreate(t *testing.T) {
	p := newProduct(t, 10, 2, 5, nil)

	assert.Equal(t, creator, p.Creator())
	assert.Equal(t, uint64(10), p.Price())
	assert.Equal(t, uint64(2), p.GoalCount())
	assert.Equal(t, uint64(5), p.MaxCount())
	assert.Equal(t, uint64(0), p.BuyerCount())
	assert.Equal(t, uint64(0), p.Balance())
	assert.False(t, p.Publicized())
	assert.Equal(t, "test asset", p.Metadata())
	assert.Equal(t, "deadbeef", p.StoragePointer())
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name             string
		price, goal, max uint64
	}{
		{"zero price", 0, 2, 5},
		{"zero goal", 10, 0, 5},
		{"max below goal", 10, 5, 4},
		{"cap overflow", math.MaxUint64, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(CreateParams{
				Creator:   creator,
				Price:     tt.price,
				GoalCount: tt.goal,
				MaxCount:  tt.max,
			}, nil)
			assert.ErrorIs(t, err, ErrInvalidGoalConfiguration)
		})
	}
}

func TestCreate_MaxEqualsGoal(t *testing.T) {
	p := newProduct(t, 10, 3, 3, nil)
	assert.Equal(t, uint64(3), p.MaxCount())
}

func TestCreate_CopiesPayload(t *testing.T) {
	raw := []byte("ciphertext")
	p, err := Create(CreateParams{
		Creator: creator, Price: 1, GoalCount: 1, MaxCount: 1, Payload: raw,
	}, nil)
	require.NoError(t, err)

	raw[0] = 'X' // mutating the caller's slice must not reach the aggregate
	snap := p.Snapshot()
	assert.Equal(t, []byte("ciphertext"), snap.Payload)
}

func TestRecordCodec(t *testing.T) {
	p := newProduct(t, 10, 1, 5, nil)
	rec := &PurchaseRecord{
		Buyer:               alice,
		ProductID:           p.ID(),
		PaidAmount:          10,
		CompensationClaimed: 3,
	}
	decoded, err := DeserializeRecord(SerializeRecord(rec))
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)

	_, err = DeserializeRecord([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrInvalidRecordData)
}
