// Package store provides the content-addressed blob store for encrypted
// payloads. A product's storage pointer is the hex address returned by Put.
//
// Blobs are stored at {baseDir}/{addr[:2]}/{addr}, where addr is the hex
// SHA256 of the blob. The first byte (2 hex chars) shards the directory.
// Payload bytes are opaque: the store never interprets or decrypts them.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// addrLen is the length of a hex-encoded SHA256 address.
const addrLen = 64

// FileStore persists payload blobs on the local filesystem.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a blob store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidBaseDir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Address returns the storage address of a payload: hex(SHA256(payload)).
func Address(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// validateAddr checks that addr is a well-formed hex SHA256 address.
func validateAddr(addr string) error {
	if len(addr) != addrLen {
		return fmt.Errorf("%w: must be %d hex chars, got %d", ErrInvalidAddress, addrLen, len(addr))
	}
	if _, err := hex.DecodeString(addr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return nil
}

// blobPath returns the sharded filesystem path for an address.
func (fs *FileStore) blobPath(addr string) string {
	return filepath.Join(fs.baseDir, addr[:2], addr)
}

// Put stores a payload blob and returns its address. Storing the same
// bytes twice is a no-op returning the same address.
func (fs *FileStore) Put(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", ErrEmptyContent
	}
	addr := Address(payload)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.blobPath(addr)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(path, payload, 0600); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return addr, nil
}

// Get retrieves a payload blob by address, verifying its content hash.
func (fs *FileStore) Get(addr string) ([]byte, error) {
	if err := validateAddr(addr); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.blobPath(addr))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if Address(data) != addr {
		return nil, fmt.Errorf("%w: %s", ErrContentMismatch, addr)
	}
	return data, nil
}

// Has reports whether a blob exists for the given address.
func (fs *FileStore) Has(addr string) (bool, error) {
	if err := validateAddr(addr); err != nil {
		return false, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if _, err := os.Stat(fs.blobPath(addr)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return true, nil
}
