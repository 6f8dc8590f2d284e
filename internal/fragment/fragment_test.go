package fragment_test

import (
	"strings"
	"testing"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/stretchr/testify/assert"
)

func TestFragmentLetters(t *testing.T) {
	f := fragment.New("behold! a dragon")
	assert.Equal(t, []string{"behold", "!", "a", "dragon"}, f.Words)

	want := multiset.Of("beholdadragon!")
	assert.True(t, f.Letters.Equal(want))
	assert.Equal(t, int32(0), f.Letters.Get(' '))
}

func TestCaseSensitivity(t *testing.T) {
	f := fragment.New("CAPS MATTER")
	assert.Equal(t, []string{"CAPS", "MATTER"}, f.Words)
}

func TestAllWhitespaceYieldsNoWords(t *testing.T) {
	f := fragment.New("   \t  ")
	assert.Empty(t, f.Words)
	assert.Equal(t, "", f.Sentence)
}

func TestPunctuationIsTokenizedIndividually(t *testing.T) {
	f := fragment.New("I said:,!!")
	assert.Equal(t, []string{"I", "said", ":", ",", "!", "!"}, f.Words)
}

func TestApostropheAndHyphenAreLetters(t *testing.T) {
	f := fragment.New("don't stop-gap")
	assert.Equal(t, []string{"don't", "stop-gap"}, f.Words)
}

// TestRoundTrip is the tokenize-then-detokenize property from the testable
// properties list: joining Tokenize's output with single spaces and
// re-tokenizing must reproduce the same word list.
func TestRoundTrip(t *testing.T) {
	cases := []string{
		"behold! a dragon",
		"I said:,!!",
		"don't stop-gap now",
		"",
	}
	for _, c := range cases {
		words := fragment.Tokenize(c)
		joined := strings.Join(words, " ")
		assert.Equal(t, words, fragment.Tokenize(joined), "input %q", c)
	}
}
