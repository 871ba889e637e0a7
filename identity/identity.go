// Package identity defines the principal type used in every ownership and
// authorization check. A Principal is the 20-byte HASH160 of a compressed
// secp256k1 public key; the rest of the library treats it as an opaque
// comparable value.
package identity

import (
	"encoding/hex"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// PrincipalSize is the byte length of a Principal.
const PrincipalSize = 20

// Principal identifies a caller (creator or buyer).
type Principal [PrincipalSize]byte

// FromPublicKey derives a Principal from a public key:
// HASH160(pubkey) = RIPEMD160(SHA256(compressed_pubkey)).
func FromPublicKey(pub *ec.PublicKey) Principal {
	var p Principal
	copy(p[:], bsvhash.Hash160(pub.Compressed()))
	return p
}

// FromHex parses a hex-encoded 20-byte principal.
func FromHex(s string) (Principal, error) {
	var p Principal
	b, err := hex.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("%w: %w", ErrInvalidPrincipal, err)
	}
	if len(b) != PrincipalSize {
		return p, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPrincipal, PrincipalSize, len(b))
	}
	copy(p[:], b)
	return p, nil
}

// Hex returns the hex encoding of the principal.
func (p Principal) Hex() string { return hex.EncodeToString(p[:]) }

// IsZero reports whether the principal is the all-zero value.
func (p Principal) IsZero() bool { return p == Principal{} }
