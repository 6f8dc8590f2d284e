// Package multiset implements fixed-alphabet multiset arithmetic over bytes.
//
// The puzzle alphabet (letters, apostrophe, hyphen, a handful of punctuation
// marks, and space) fits comfortably in the printable ASCII range, so a
// dense array indexed by byte value is both simpler and faster on the hot
// paths (soft validation, vocabulary filtering) than a map[byte]int would
// be.
package multiset

import "strings"

// Multiset counts occurrences of each byte in 0..127. Entries may go
// negative; callers use that as the "not a subset" sentinel rather than
// guarding every subtraction.
type Multiset [128]int32

// Of builds a Multiset from the bytes of s, with the space count forced to
// zero so multiset comparisons naturally ignore whitespace.
func Of(s string) Multiset {
	var m Multiset
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 128 {
			m[c]++
		}
	}
	m[' '] = 0
	return m
}

// Total returns the sum of all (non-negative and negative) multiplicities.
func (m Multiset) Total() int {
	total := 0
	for _, n := range m {
		total += int(n)
	}
	return total
}

// Get returns the multiplicity of c.
func (m Multiset) Get(c byte) int32 {
	if c >= 128 {
		return 0
	}
	return m[c]
}

// Add returns the element-wise sum (the multiset union with multiplicity,
// i.e. disjoint union "⊎").
func (m Multiset) Add(other Multiset) Multiset {
	var out Multiset
	for i := range m {
		out[i] = m[i] + other[i]
	}
	return out
}

// Sub returns the element-wise difference. Entries may go negative; this is
// the "uses letters not available" sentinel used by soft/hard validation.
func (m Multiset) Sub(other Multiset) Multiset {
	var out Multiset
	for i := range m {
		out[i] = m[i] - other[i]
	}
	return out
}

// NonNegative reports whether every multiplicity is >= 0.
func (m Multiset) NonNegative() bool {
	for _, n := range m {
		if n < 0 {
			return false
		}
	}
	return true
}

// Subset reports whether m is contained in other: every multiplicity of m is
// <= the corresponding multiplicity of other.
func (m Multiset) Subset(other Multiset) bool {
	for i := range m {
		if m[i] > other[i] {
			return false
		}
	}
	return true
}

// Equal reports whether m and other have identical multiplicities.
func (m Multiset) Equal(other Multiset) bool {
	return m == other
}

// Elements returns the canonical string listing each element by ascending
// byte value, repeated by its multiplicity. Non-positive multiplicities
// contribute nothing. This is the Go-native stand-in for the original's
// `"".join(counter.elements())`, made deterministic since the original's
// ordering was an accident of CPython dict insertion order.
func (m Multiset) Elements() string {
	var b strings.Builder
	for c := 0; c < 128; c++ {
		n := m[c]
		for ; n > 0; n-- {
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}
