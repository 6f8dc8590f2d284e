// Package scorer defines the language-model scoring interface used to bias
// search toward fluent arrangements, plus a deterministic stand-in
// implementation for tests.
package scorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/lonnen/anagramist/internal/fragment"
)

// ErrAlignment is returned when a Scorer's response words do not exactly
// match the fragment's words. It is fatal to the current expansion only;
// the solver never retries a failed alignment.
var ErrAlignment = errors.New("scorer: response words do not align with fragment words")

// WordScore pairs a word with its log-score as returned by the scorer,
// aligned to the position of that word in the originating fragment.
type WordScore struct {
	Word     string
	LogScore float64
}

// Scorer returns an aligned list of (word, log_score) pairs for a Fragment,
// such that the order matches fragment.Words and the sum of LogScore over
// the returned list is the log-probability of the sentence under the
// language model, conditioned on an optional fixed context prefix.
type Scorer interface {
	Score(ctx context.Context, f fragment.Fragment) ([]WordScore, error)
}

// BatchScorer is an optional capability: scoring many fragments in one
// call. Callers should type-assert for it and fall back to looping over
// Score when absent.
type BatchScorer interface {
	ScoreBatch(ctx context.Context, fs []fragment.Fragment) ([][]WordScore, error)
}

// checkAlignment verifies that got's words exactly match f.Words, in order.
func checkAlignment(f fragment.Fragment, got []WordScore) error {
	if len(got) != len(f.Words) {
		return fmt.Errorf("%w: got %d words, want %d", ErrAlignment, len(got), len(f.Words))
	}
	for i, w := range f.Words {
		if got[i].Word != w {
			return fmt.Errorf("%w: position %d: got %q, want %q", ErrAlignment, i, got[i].Word, w)
		}
	}
	return nil
}

// Universal is a deterministic scorer that assigns the same log-score to
// every word, making weighted selection uniform. It is the Go-native
// counterpart to the original's UniversalOracle and is suitable as a
// stand-in for tests and for exercising the solver without a real LM
// backend.
type Universal struct {
	// LogScore is the constant per-word score. Defaults to -1.0 (matching
	// UniversalOracle) when zero-valued via NewUniversal.
	LogScore float64
}

// NewUniversal returns a Universal scorer with the conventional constant
// score of -1.0 per word.
func NewUniversal() *Universal {
	return &Universal{LogScore: -1.0}
}

// Score implements Scorer.
func (u *Universal) Score(_ context.Context, f fragment.Fragment) ([]WordScore, error) {
	out := make([]WordScore, len(f.Words))
	for i, w := range f.Words {
		out[i] = WordScore{Word: w, LogScore: u.LogScore}
	}
	return out, nil
}
