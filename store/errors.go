package store

import "errors"

var (
	// ErrNotFound indicates no blob exists for the given address.
	ErrNotFound = errors.New("store: content not found")

	// ErrInvalidAddress indicates a malformed storage address.
	ErrInvalidAddress = errors.New("store: invalid address")

	// ErrEmptyContent indicates an attempt to store an empty payload.
	ErrEmptyContent = errors.New("store: content is empty")

	// ErrInvalidBaseDir indicates the base directory path is empty.
	ErrInvalidBaseDir = errors.New("store: invalid base directory")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("store: I/O failure")

	// ErrContentMismatch indicates stored bytes no longer hash to their address.
	ErrContentMismatch = errors.New("store: content hash mismatch")
)
