package identity

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPublicKey(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	p := FromPublicKey(priv.PubKey())
	assert.False(t, p.IsZero())

	// Same key derives the same principal.
	assert.Equal(t, p, FromPublicKey(priv.PubKey()))

	// A different key derives a different principal.
	other, err := ec.NewPrivateKey()
	require.NoError(t, err)
	assert.NotEqual(t, p, FromPublicKey(other.PubKey()))
}

func TestHexRoundTrip(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	p := FromPublicKey(priv.PubKey())

	decoded, err := FromHex(p.Hex())
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestFromHex_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not hex", "zz"},
		{"too short", "abcd"},
		{"too long", "00112233445566778899aabbccddeeff0011223344"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHex(tt.in)
			assert.ErrorIs(t, err, ErrInvalidPrincipal)
		})
	}
}
