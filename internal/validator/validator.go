// Package validator implements soft and hard validation of candidate
// fragments against the puzzle's structural constraints.
package validator

import (
	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/lonnen/anagramist/internal/vocab"
)

// Mode selects which constraint set applies on top of the base rules.
type Mode int

const (
	// ModeGeneral applies only the base rules (letters used, words in
	// vocabulary, at least one completion exists).
	ModeGeneral Mode = iota
	// ModeC1663 additionally applies the Dinosaur Comics #1663 ("the
	// Qwantzle") constraints: leading "I", ordered punctuation, the
	// 11/8-letter adjacency rule, and the trailing "w!!".
	ModeC1663
)

// punctuationOrder is the ordered list of single-character, non-alphabetic
// words the c1663 puzzle requires, modeled as a small DFA: `pos` advances
// one step for each punctuation word encountered, and any mismatch fails
// the candidate immediately.
var punctuationOrder = []string{":", ",", "!", "!"}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isPunctuationWord reports whether w is a single-character, non-alphabetic
// word (the class of token the punctuation-order DFA tracks).
func isPunctuationWord(w string) bool {
	return len(w) == 1 && !isAlpha(w[0])
}

// punctuationOrderOK walks words and checks that every punctuation word
// encountered matches the next expected symbol in punctuationOrder, in
// order. A deviation at any position fails the whole candidate.
func punctuationOrderOK(words []string) bool {
	pos := 0
	for _, w := range words {
		if !isPunctuationWord(w) {
			continue
		}
		if pos >= len(punctuationOrder) || w != punctuationOrder[pos] {
			return false
		}
		pos++
	}
	return true
}

// Soft reports whether placed conforms to the problem constraints given the
// letters placed so far: no already-placed choice rules out every possible
// completion. Soft validation is not a guarantee a solution exists, only
// that the current placement does not preclude one.
func Soft(placed fragment.Fragment, remaining multiset.Multiset, v *vocab.Vocabulary, mode Mode) bool {
	if !remaining.NonNegative() {
		return false
	}
	for _, w := range placed.Words {
		if !v.Contains(w) {
			return false
		}
	}
	if remaining.Total() > 0 && !v.AnySpellableFrom(remaining) {
		return false
	}

	if mode == ModeC1663 {
		if !softC1663(placed, remaining, v) {
			return false
		}
	}

	return true
}

func softC1663(placed fragment.Fragment, remaining multiset.Multiset, v *vocab.Vocabulary) bool {
	words := placed.Words
	if len(words) == 0 || words[0] != "I" {
		return false
	}

	if !punctuationOrderOK(words) {
		return false
	}

	if !lengthRuleOK(words) {
		return false
	}

	total := remaining.Total()
	if total == 2 {
		if len(placed.Sentence) == 0 || placed.Sentence[len(placed.Sentence)-1] != 'w' {
			return false
		}
		if remaining.Get('!') != 2 {
			return false
		}
	}
	if total > 3 {
		if remaining.Get('w') == 0 || remaining.Get('!') < 2 {
			return false
		}
	}
	if total > 2 {
		if !v.AnySpellableFromEndingIn(remaining, "w") {
			return false
		}
	}

	return true
}

// lengthRuleOK implements the "longest word is 11 characters, second
// longest is 8, and they are adjacent" constraint. Every word longer than 8
// characters must be exactly 11, and either its immediate neighbor is 8
// characters long or the 11-letter word is the most recently placed word
// (its neighbor may not have arrived yet).
func lengthRuleOK(words []string) bool {
	for i, w := range words {
		if len(w) <= 8 {
			continue
		}
		if len(w) != 11 {
			return false
		}
		if i == len(words)-1 {
			// Most recently placed; the 8-letter neighbor may still come.
			continue
		}
		prevIs8 := i > 0 && len(words[i-1]) == 8
		nextIs8 := i+1 < len(words) && len(words[i+1]) == 8
		if !prevIs8 && !nextIs8 {
			return false
		}
	}
	return true
}

// endsInWBangBang reports whether the final three letters of the
// concatenated (whitespace-free) word sequence are "w!!": the last two
// words are the punctuation tokens "!" and "!", and the word preceding
// them itself ends in "w".
func endsInWBangBang(words []string) bool {
	if len(words) < 3 {
		return false
	}
	last, secondLast, third := words[len(words)-1], words[len(words)-2], words[len(words)-3]
	if last != "!" || secondLast != "!" {
		return false
	}
	return len(third) > 0 && third[len(third)-1] == 'w'
}

// Hard reports whether placed is a complete, legal solution: every bank
// letter has been used, every word is in the vocabulary, and (in c1663
// mode) the full constraint set holds.
func Hard(placed fragment.Fragment, remaining multiset.Multiset, v *vocab.Vocabulary, mode Mode) bool {
	if !remaining.NonNegative() || remaining.Total() != 0 {
		return false
	}
	for _, w := range placed.Words {
		if !v.Contains(w) {
			return false
		}
	}

	if mode == ModeC1663 {
		words := placed.Words
		if len(words) == 0 || words[0] != "I" {
			return false
		}
		if !endsInWBangBang(words) {
			return false
		}
		if !punctuationOrderOK(words) {
			return false
		}
		if !lengthRuleOK(words) {
			return false
		}
	}

	return true
}
