package solver

import "errors"

// ErrCandidateNotFound is returned (or wrapped) when a caller asks about a
// placed string the Store has no row for and assessment was not requested
// to backfill one.
var ErrCandidateNotFound = errors.New("solver: candidate not found")
