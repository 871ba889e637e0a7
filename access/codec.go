package access

import (
	"fmt"

	"github.com/poipnet/libpoip-go/identity"
)

const (
	requestSize    = 16 + 16 + identity.PrincipalSize // token(16) + product(16) + buyer(20)
	capabilitySize = 16 + 16                          // token(16) + product(16)
)

// SerializeRequest encodes a DecryptionRequest to binary format.
func SerializeRequest(req *DecryptionRequest) []byte {
	buf := make([]byte, requestSize)
	copy(buf[0:16], req.Token[:])
	copy(buf[16:32], req.ProductID[:])
	copy(buf[32:], req.Buyer[:])
	return buf
}

// DeserializeRequest decodes binary data into a DecryptionRequest.
func DeserializeRequest(data []byte) (*DecryptionRequest, error) {
	if len(data) != requestSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidTokenData, requestSize, len(data))
	}
	req := &DecryptionRequest{}
	copy(req.Token[:], data[0:16])
	copy(req.ProductID[:], data[16:32])
	copy(req.Buyer[:], data[32:])
	return req, nil
}

// SerializeCapability encodes a KeyCapability to binary format.
func SerializeCapability(cap *KeyCapability) []byte {
	buf := make([]byte, capabilitySize)
	copy(buf[0:16], cap.Token[:])
	copy(buf[16:32], cap.ProductID[:])
	return buf
}

// DeserializeCapability decodes binary data into a KeyCapability.
func DeserializeCapability(data []byte) (*KeyCapability, error) {
	if len(data) != capabilitySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidTokenData, capabilitySize, len(data))
	}
	cap := &KeyCapability{}
	copy(cap.Token[:], data[0:16])
	copy(cap.ProductID[:], data[16:32])
	return cap, nil
}
