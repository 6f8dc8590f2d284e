// Package vocab holds the permitted dictionary and lazily enumerates the
// words spellable from a remaining letter multiset.
package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"
)

// Vocabulary is a finite, ordered set of permitted words. Order is
// insertion order and is preserved across filtering so that iteration
// order stays stable for a given remaining multiset.
type Vocabulary struct {
	words   []string
	letters []multiset.Multiset // parallel to words
	has     map[string]bool
}

// New builds a Vocabulary from a word list, deduplicating while preserving
// first-seen order.
func New(words []string) *Vocabulary {
	v := &Vocabulary{
		has: make(map[string]bool, len(words)),
	}
	for _, w := range words {
		if v.has[w] {
			continue
		}
		v.has[w] = true
		v.words = append(v.words, w)
		v.letters = append(v.letters, multiset.Of(w))
	}
	return v
}

// Load reads a newline-delimited word list from path.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read reads a newline-delimited word list from r.
func Read(r io.Reader) (*Vocabulary, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}
	return New(words), nil
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int { return len(v.words) }

// Contains reports whether w is in the vocabulary.
func (v *Vocabulary) Contains(w string) bool { return v.has[w] }

// Words returns the full word list, in insertion order. Callers must treat
// it as read-only.
func (v *Vocabulary) Words() []string { return v.words }

// Filter returns a new Vocabulary containing only the words for which keep
// returns true, in their original order. Used to build the puzzle-specific
// restricted vocabulary at construction time (general and c1663 variants).
func (v *Vocabulary) Filter(keep func(word string) bool) *Vocabulary {
	out := &Vocabulary{has: make(map[string]bool)}
	for i, w := range v.words {
		if !keep(w) {
			continue
		}
		out.has[w] = true
		out.words = append(out.words, w)
		out.letters = append(out.letters, v.letters[i])
	}
	return out
}

// SpellableFrom lazily yields words whose letters are contained in
// remaining, in a deterministic order stable across calls for a given
// remaining. It is a range-over-func iterator so callers such as the
// solver's simulation walk and the validator's "does any word survive"
// check can stop on the first match without materializing the full list.
func (v *Vocabulary) SpellableFrom(remaining multiset.Multiset) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for i, w := range v.words {
			if v.letters[i].Subset(remaining) {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// AnySpellableFrom reports whether at least one vocabulary word is
// spellable from remaining, without materializing the filtered list.
func (v *Vocabulary) AnySpellableFrom(remaining multiset.Multiset) bool {
	for w := range v.SpellableFrom(remaining) {
		_ = w
		return true
	}
	return false
}

// AnySpellableFromEndingIn reports whether at least one vocabulary word
// spellable from remaining ends in suffix. Used by the c1663 "a word ending
// in w must still be available" soft-validation clause.
func (v *Vocabulary) AnySpellableFromEndingIn(remaining multiset.Multiset, suffix string) bool {
	for w := range v.SpellableFrom(remaining) {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}

// FragmentLettersSubset reports whether the letters of word are a subset of
// bank; a small helper used when filtering an externally supplied word
// rather than one already indexed in the Vocabulary.
func FragmentLettersSubset(word string, bank multiset.Multiset) bool {
	return fragment.New(word).Letters.Subset(bank)
}
