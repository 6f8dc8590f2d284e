package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonnen/anagramist/internal/solver"
)

func TestScoreCommandReportsSolution(t *testing.T) {
	vocabPath := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, writeLines(vocabPath, []string{"bish", "bash", "bosh"}))

	root, _ := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{
		"--letters", "bishbashbosh",
		"--vocab", vocabPath,
		"score", "bish", "bash", "bosh",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "WINNER: bish bash bosh")
}

func TestCandidatesCommandReportsMissingCandidate(t *testing.T) {
	vocabPath := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, writeLines(vocabPath, []string{"bish", "bash", "bosh"}))
	dbPath := filepath.Join(t.TempDir(), "anagramist.db")

	root, _ := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{
		"--letters", "bishbashbosh",
		"--vocab", vocabPath,
		"--database", dbPath,
		"candidates", "nope",
	})

	err := root.Execute()
	assert.ErrorIs(t, err, solver.ErrCandidateNotFound)
}

func writeLines(path string, lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
