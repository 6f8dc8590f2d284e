// Package puzzle bundles the named constant sets for a specific
// cryptoanagram instance: its letter bank, its mode, and the vocabulary
// restriction that mode implies.
package puzzle

import (
	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/validator"
	"github.com/lonnen/anagramist/internal/vocab"
)

// C1663Letters is the literal letter bank for Dinosaur Comics #1663 (the
// Qwantzle), including its terminal punctuation.
const C1663Letters = "ttttttttttttooooooooooeeeeeeeeaaaaaaallllllnnnnnnuuuuuuiiiiisssssdddddhhhhhyyyyyIIrrrfffbbwwkcmvg:,!!"

// C1663Root is the known first word of the comic 1663 solution; the solver
// starts from it rather than from "".
const C1663Root = "I"

// Puzzle bundles a letter bank, vocabulary, and validation mode into the
// inputs a Solver needs.
type Puzzle struct {
	Letters string
	Vocab   *vocab.Vocabulary
	Mode    validator.Mode
	Root    string
}

// NewGeneral builds a Puzzle with no structural constraints beyond the
// letter bank and vocabulary: every word in v whose letters fit within
// letters is retained.
func NewGeneral(letters string, v *vocab.Vocabulary) *Puzzle {
	bank := fragment.New(letters).Letters
	restricted := v.Filter(func(w string) bool {
		return vocab.FragmentLettersSubset(w, bank)
	})
	return &Puzzle{Letters: letters, Vocab: restricted, Mode: validator.ModeGeneral}
}

// NewC1663 builds the Puzzle for comic 1663: the general letter-bank
// restriction, further narrowed to words of length 11 (the one long word
// the puzzle allows) or length <= 8 (its neighbor and every other word),
// rooted at the known first word "I".
func NewC1663(v *vocab.Vocabulary) *Puzzle {
	bank := fragment.New(C1663Letters).Letters
	restricted := v.Filter(func(w string) bool {
		if !vocab.FragmentLettersSubset(w, bank) {
			return false
		}
		return len(w) == 11 || len(w) <= 8
	})
	return &Puzzle{Letters: C1663Letters, Vocab: restricted, Mode: validator.ModeC1663, Root: C1663Root}
}
