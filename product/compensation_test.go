package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poipnet/libpoip-go/event"
	"github.com/poipnet/libpoip-go/funds"
)

func TestCalculateCompensation(t *testing.T) {
	tests := []struct {
		name             string
		price, goal, max uint64
		buyers           int
		want             uint64
	}{
		{"no buyers", 10, 2, 10, 0, 0},
		{"below goal", 10, 2, 10, 1, 0},
		{"at goal", 10, 2, 10, 2, 0},
		{"one past goal", 10, 1, 10, 2, 5},  // (20-10)/2
		{"two past goal", 10, 1, 10, 3, 6},  // (30-10)/3 truncated
		{"truncation", 10, 2, 10, 3, 3},     // (30-20)/3
		{"larger pool", 100, 5, 100, 20, 75}, // (2000-500)/20
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(t, tt.price, tt.goal, tt.max, nil)
			fundProduct(t, p, tt.buyers)
			assert.Equal(t, tt.want, CalculateCompensation(p))
		})
	}
}

func TestCalculateCompensation_NonDecreasing(t *testing.T) {
	p := newProduct(t, 10, 1, 10, nil)
	prev := uint64(0)
	for i := 0; i < 10; i++ {
		fundProduct(t, p, 1)
		cur := CalculateCompensation(p)
		assert.GreaterOrEqual(t, cur, prev, "after %d buyers", i+1)
		prev = cur
	}
}

func TestClaimCompensation(t *testing.T) {
	var sink event.MemorySink
	p := newProduct(t, 10, 1, 10, &sink)

	rec, _, err := p.Purchase(funds.NewBalance(10), alice)
	require.NoError(t, err)
	_, _, err = p.Purchase(funds.NewBalance(10), bob)
	require.NoError(t, err)

	// buyer_count=2, goal=1, price=10: entitlement 5.
	dest := funds.NewBalance(0)
	claimed, err := p.ClaimCompensation(rec, alice, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), claimed)
	assert.Equal(t, uint64(5), dest.Value())
	assert.Equal(t, uint64(15), p.Balance())
	assert.Equal(t, uint64(5), rec.CompensationClaimed)

	claims := sink.ByKind(event.KindCompensationClaimed)
	require.Len(t, claims, 1)
	assert.Equal(t, alice, claims[0].Principal)
	assert.Equal(t, uint64(5), claims[0].Amount)
}

func TestClaimCompensation_IdempotentBetweenPurchases(t *testing.T) {
	p := newProduct(t, 10, 1, 10, nil)
	rec, _, err := p.Purchase(funds.NewBalance(10), alice)
	require.NoError(t, err)
	_, _, err = p.Purchase(funds.NewBalance(10), bob)
	require.NoError(t, err)

	dest := funds.NewBalance(0)
	_, err = p.ClaimCompensation(rec, alice, dest)
	require.NoError(t, err)

	// Second claim with no intervening purchase.
	_, err = p.ClaimCompensation(rec, alice, dest)
	assert.ErrorIs(t, err, ErrNothingToClaim)
	assert.Equal(t, uint64(5), dest.Value())
}

func TestClaimCompensation_GrowsWithLaterPurchases(t *testing.T) {
	// Early buyers' claimable amounts increase as later purchases land.
	p := newProduct(t, 10, 1, 10, nil)
	rec, _, err := p.Purchase(funds.NewBalance(10), alice)
	require.NoError(t, err)
	_, _, err = p.Purchase(funds.NewBalance(10), bob)
	require.NoError(t, err)

	dest := funds.NewBalance(0)
	claimed, err := p.ClaimCompensation(rec, alice, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), claimed)

	// A third purchase raises the entitlement to (30-10)/3 = 6.
	_, _, err = p.Purchase(funds.NewBalance(10), carol)
	require.NoError(t, err)

	claimed, err = p.ClaimCompensation(rec, alice, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claimed) // exactly the delta since last claim
	assert.Equal(t, uint64(6), rec.CompensationClaimed)
	assert.Equal(t, uint64(6), dest.Value())
}

func TestClaimCompensation_NotBuyer(t *testing.T) {
	p := newProduct(t, 10, 1, 10, nil)
	rec, _, err := p.Purchase(funds.NewBalance(10), alice)
	require.NoError(t, err)
	_, _, err = p.Purchase(funds.NewBalance(10), bob)
	require.NoError(t, err)

	dest := funds.NewBalance(0)
	_, err = p.ClaimCompensation(rec, bob, dest)
	assert.ErrorIs(t, err, ErrNotBuyer)
	assert.Equal(t, uint64(20), p.Balance())
}

func TestClaimCompensation_WrongProduct(t *testing.T) {
	p1 := newProduct(t, 10, 1, 10, nil)
	p2 := newProduct(t, 10, 1, 10, nil)
	rec, _, err := p1.Purchase(funds.NewBalance(10), alice)
	require.NoError(t, err)
	fundProduct(t, p2, 2)

	dest := funds.NewBalance(0)
	_, err = p2.ClaimCompensation(rec, alice, dest)
	assert.ErrorIs(t, err, ErrInvalidRecordData)
}

func TestClaimCompensation_LedgerDrained(t *testing.T) {
	// A ledger drained by withdrawals below the outstanding entitlement is
	// an accounting fault and must be distinguishable from NothingToClaim.
	p := newProduct(t, 10, 1, 10, nil)
	rec, _, err := p.Purchase(funds.NewBalance(10), alice)
	require.NoError(t, err)
	_, _, err = p.Purchase(funds.NewBalance(10), bob)
	require.NoError(t, err)

	dest := funds.NewBalance(0)
	require.NoError(t, p.Withdraw(creator, 18, dest)) // ledger now 2, entitlement 5

	_, err = p.ClaimCompensation(rec, alice, dest)
	assert.ErrorIs(t, err, ErrInsufficientLedgerBalance)
	assert.NotErrorIs(t, err, ErrNothingToClaim)
	assert.Equal(t, uint64(0), rec.CompensationClaimed)
	assert.Equal(t, uint64(2), p.Balance())
}
