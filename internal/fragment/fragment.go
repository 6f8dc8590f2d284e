// Package fragment parses a candidate sentence into its word list and
// letter multiset, the immutable value that the validator, vocabulary
// filter, scorer, and search tree store are all built on top of.
package fragment

import (
	"strings"

	"github.com/lonnen/anagramist/internal/multiset"
)

// letterClass is the set of characters that continue a word rather than
// starting a new one-character token. Case-sensitive and fixed, per the
// tokenization rule.
const letterClass = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz'-"

func isLetter(c byte) bool {
	return strings.IndexByte(letterClass, c) >= 0
}

// Fragment is an immutable candidate sentence: its canonical form, its
// parsed words, and the multiset of its non-space letters.
type Fragment struct {
	Sentence string
	Words    []string
	Letters  multiset.Multiset
}

// New parses sentence into a Fragment. Concatenating Words with single
// spaces reproduces Sentence; Letters equals the multiset of non-space
// characters of Sentence.
func New(sentence string) Fragment {
	words := Tokenize(sentence)
	canonical := strings.Join(words, " ")
	return Fragment{
		Sentence: canonical,
		Words:    words,
		Letters:  multiset.Of(canonical),
	}
}

// Tokenize partitions a candidate string into words such that:
//   - runs of characters in the letter class form a single word;
//   - each non-whitespace character outside the letter class becomes its
//     own one-character word (punctuation is tokenized);
//   - whitespace separates tokens and is not emitted;
//   - an all-whitespace input yields an empty word list.
func Tokenize(s string) []string {
	words := make([]string, 0, len(s)/4+1)
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isLetter(c):
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			flush()
			words = append(words, string(c))
		}
	}
	flush()
	return words
}

// Join reproduces the canonical sentence form for a word list.
func Join(words []string) string {
	return strings.Join(words, " ")
}
