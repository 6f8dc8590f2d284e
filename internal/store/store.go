// Package store implements the durable, single-process search tree store:
// a keyed collection of candidate nodes supporting lookup, weighted random
// sampling over the frontier, status transitions, and pruning.
//
// The Store is thread-hostile: callers must serialize all access
// themselves, exactly as spec'd for a single solver loop owning one store.
package store

import "strings"

// Status is the stable, user-visible numeric tag for a candidate node's
// state in the exploration state machine.
type Status int

const (
	// OK marks a node that passes soft validation and may still be
	// expanded.
	OK Status = 0
	// Invalid marks a node that failed hard validation at a dead end (the
	// simulated walk could not be extended and never produced a winner), or
	// whose mean score fell below the solver's pruning threshold.
	Invalid Status = 1
	// FullyExplored marks a node whose legal next words have all been
	// exhausted (observed via selection's dead-end detection).
	FullyExplored Status = 5
	// Unexplored is a read-only sentinel for rows the Store does not
	// contain; it is never persisted.
	Unexplored Status = 6
	// ManuallyInvalid marks a node an operator has excluded by hand.
	ManuallyInvalid Status = 7
)

// String renders the status the way operator tooling reports it.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Invalid:
		return "INVALID"
	case FullyExplored:
		return "FULLY_EXPLORED"
	case Unexplored:
		return "UNEXPLORED"
	case ManuallyInvalid:
		return "MANUALLY_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Excluded reports whether the status permanently excludes a node from
// selection and expansion.
func (s Status) Excluded() bool {
	return s == Invalid || s == FullyExplored || s == ManuallyInvalid
}

// Row is a candidate node: a placed prefix together with its derived
// fields. See spec §3 for the invariants each stored Row must satisfy.
type Row struct {
	Placed          string
	Remaining       string
	Parent          string
	Score           float64
	CumulativeScore float64
	MeanScore       float64
	Status          Status
}

// StatusEffect reports what setting a status actually did.
type StatusEffect int

const (
	// NoSuchRow means the target placed value has no row in the Store.
	NoSuchRow StatusEffect = iota
	// AlreadySet means the row already had the requested status.
	AlreadySet
	// Updated means the row's status was changed.
	Updated
)

// Store is the durable keyed collection of candidate nodes described in
// spec §4.5.
type Store interface {
	// Get returns the row keyed by placed, or ok=false if absent.
	Get(placed string) (row Row, ok bool, err error)

	// GetChildren returns rows whose Parent equals placed. Order is
	// unspecified.
	GetChildren(placed string) ([]Row, error)

	// GetDescendants returns rows whose Placed is strictly prefixed by
	// placed+" ". Used only by inspection.
	GetDescendants(placed string) ([]Row, error)

	// Push upserts row keyed by Placed. Score, CumulativeScore, MeanScore,
	// and Status are overwritten; Remaining and Parent are immutable after
	// first insertion — a mismatched write is skipped, not merged, and
	// reported via the returned error.
	Push(row Row) error

	// Sample performs weighted random selection among rows with
	// Status == OK whose Placed equals prefix or is rooted at prefix
	// (Placed == prefix or Placed has the prefix "prefix "). Returns
	// ok=false when no such row exists.
	Sample(prefix string) (row Row, ok bool, err error)

	// SetStatus sets placed's status, reporting what effect the write had.
	SetStatus(placed string, newStatus Status) (StatusEffect, error)

	// Trim deletes every strict descendant of placed (not placed itself)
	// and returns the number of rows removed.
	Trim(placed string) (int, error)

	// Verify reads every row, accumulates letters(placed) ⊎ letters(remaining)
	// into a histogram bucketed by the resulting multiset's canonical
	// string, and reports ok=true iff at most one distinct bucket exists.
	Verify() (ok bool, histogram map[string]int, err error)

	// Len returns the number of stored rows.
	Len() (int, error)

	// Close releases any underlying resources.
	Close() error
}

// Seedable is implemented by Store backends whose Sample draws from a
// pinnable random source, letting the CLI's --seed flag make a run
// reproducible.
type Seedable interface {
	SetSeed(seed uint64)
}

// isRootedAt reports whether placed equals prefix or is a (not necessarily
// immediate) descendant of prefix in the " "-joined word-prefix sense.
func isRootedAt(placed, prefix string) bool {
	if placed == prefix {
		return true
	}
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(placed, prefix+" ")
}

// isStrictDescendant reports whether placed is a strict descendant of
// placedPrefix (used by GetDescendants / Trim, which never match the node
// itself).
func isStrictDescendant(placed, placedPrefix string) bool {
	if placedPrefix == "" {
		return placed != ""
	}
	return strings.HasPrefix(placed, placedPrefix+" ")
}

// parentOf returns the placed string produced by dropping the last word
// (and its preceding space) from placed, or "" if placed has no space.
func parentOf(placed string) string {
	idx := strings.LastIndexByte(placed, ' ')
	if idx < 0 {
		return ""
	}
	return placed[:idx]
}
