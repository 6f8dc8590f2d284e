package validator_test

import (
	"testing"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/lonnen/anagramist/internal/validator"
	"github.com/lonnen/anagramist/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankRemaining(bank, placed string) multiset.Multiset {
	return multiset.Of(bank).Sub(multiset.Of(placed))
}

func TestSoftValidationGeneral(t *testing.T) {
	v := vocab.New([]string{"bish", "bash", "bosh"})
	bank := "bishbashbosh"

	f := fragment.New("bish")
	remaining := bankRemaining(bank, f.Sentence)
	assert.True(t, validator.Soft(f, remaining, v, validator.ModeGeneral))

	bad := fragment.New("nope")
	badRemaining := bankRemaining(bank, bad.Sentence)
	assert.False(t, validator.Soft(bad, badRemaining, v, validator.ModeGeneral))
}

func TestSoftValidationFailsOnWordNotInVocab(t *testing.T) {
	v := vocab.New([]string{"bish"})
	f := fragment.New("bash")
	remaining := bankRemaining("bishbash", f.Sentence)
	assert.False(t, validator.Soft(f, remaining, v, validator.ModeGeneral))
}

func TestSoftValidationCaseSensitiveVocab(t *testing.T) {
	v := vocab.New([]string{"caps", "matter"})
	f := fragment.New("CAPS MATTER")
	remaining := bankRemaining("CAPSMATTER", f.Sentence)
	assert.False(t, validator.Soft(f, remaining, v, validator.ModeGeneral))
}

func TestSoftValidationRequiresFirstWordI(t *testing.T) {
	v := vocab.New([]string{"I", "said", ":", ",", "!", "hello"})
	missing := fragment.New("said :")
	remaining := bankRemaining("I said: ,!!hello", missing.Sentence)
	assert.False(t, validator.Soft(missing, remaining, v, validator.ModeC1663))
}

func TestSoftValidationPunctuationOrder(t *testing.T) {
	v := vocab.New([]string{"I", "said", ":", ",", "!", "w"})
	bank := multiset.Of("I said:,!!ww")

	// ":" then "," is correct order so far.
	ok := fragment.New("I said : ,")
	okRemaining := bank.Sub(ok.Letters)
	assert.True(t, validator.Soft(ok, okRemaining, v, validator.ModeC1663))

	// "," before ":" violates the required order.
	bad := fragment.New("I said , :")
	badRemaining := bank.Sub(bad.Letters)
	assert.False(t, validator.Soft(bad, badRemaining, v, validator.ModeC1663))
}

func TestHardImpliesSoft(t *testing.T) {
	v := vocab.New([]string{"bish", "bash", "bosh"})
	bank := multiset.Of("bishbashbosh")
	f := fragment.New("bish bash bosh")
	remaining := bank.Sub(f.Letters)
	require.True(t, remaining.NonNegative())

	hard := validator.Hard(f, remaining, v, validator.ModeGeneral)
	require.True(t, hard)
	assert.True(t, validator.Soft(f, remaining, v, validator.ModeGeneral))
}

func TestSoftMonotonicity(t *testing.T) {
	v := vocab.New([]string{"bish", "bash", "bosh"})
	bank := multiset.Of("bishbashbosh")

	prefix := fragment.New("bish")
	prefixRemaining := bank.Sub(prefix.Letters)
	extended := fragment.New("bish bash")
	extendedRemaining := bank.Sub(extended.Letters)

	if validator.Soft(extended, extendedRemaining, v, validator.ModeGeneral) {
		assert.True(t, validator.Soft(prefix, prefixRemaining, v, validator.ModeGeneral))
	}
}

func TestHardC1663RequiresTrailingWBangBang(t *testing.T) {
	v := vocab.New([]string{"I", "said", "saw", ":", ",", "!"})
	bank := multiset.Of("I said: ,saw!!")
	f := fragment.New("I said : , saw ! !")
	remaining := bank.Sub(f.Letters)
	assert.True(t, validator.Hard(f, remaining, v, validator.ModeC1663))

	notW := fragment.New("I said : , saw")
	notWRemaining := bank.Sub(notW.Letters)
	assert.False(t, validator.Hard(notW, notWRemaining, v, validator.ModeC1663))
}

func TestHardRejectsCancellingOverAndUnderUse(t *testing.T) {
	v := vocab.New([]string{"cc"})
	bank := multiset.Of("ac")
	f := fragment.New("cc")
	remaining := bank.Sub(f.Letters)

	require.Equal(t, 0, remaining.Total(), "remaining must sum to zero for this case to be a regression test")
	require.False(t, remaining.NonNegative(), "an unused 'a' and an over-used 'c' must cancel in Total()")

	assert.False(t, validator.Hard(f, remaining, v, validator.ModeGeneral))
}

func TestLengthRuleAllowsEitherNeighborAs8(t *testing.T) {
	v := vocab.New([]string{"I", "eightchr", "elevenchars"})
	// Eleven-letter word followed immediately (most-recently-placed) is fine.
	f := fragment.New("I elevenchars")
	remaining := multiset.Of("Ielevenchars").Sub(f.Letters)
	assert.True(t, validator.Soft(f, remaining, v, validator.ModeC1663))

	// An eight-letter word after the eleven-letter word is fine.
	after := fragment.New("I elevenchars eightchr")
	afterRemaining := multiset.Of(after.Sentence).Sub(after.Letters)
	assert.True(t, validator.Soft(after, afterRemaining, v, validator.ModeC1663))

	// So is an eight-letter word before it, with another word after it.
	before := fragment.New("I eightchr elevenchars I")
	beforeRemaining := multiset.Of(before.Sentence).Sub(before.Letters)
	assert.True(t, validator.Soft(before, beforeRemaining, v, validator.ModeC1663))
}
