package store

import "errors"

// Errors returned by Store implementations.
var (
	// ErrParentMismatch is returned by Push when an existing row's parent
	// would change; parent is immutable after first insertion.
	ErrParentMismatch = errors.New("store: parent is immutable after first insertion")
	// ErrRemainingMismatch is returned by Push when an existing row's
	// remaining would change; remaining is immutable after first insertion.
	ErrRemainingMismatch = errors.New("store: remaining is immutable after first insertion")
	// ErrIntegrityViolation is returned (or wrapped) when Verify finds more
	// than one distinct letter bank across a store's rows.
	ErrIntegrityViolation = errors.New("store: integrity violation")
)
