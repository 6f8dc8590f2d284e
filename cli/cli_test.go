package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonnen/anagramist/internal/store"
)

// TestCheckDatabaseFlagsIntegrityViolation exercises the store layer the
// way check-database does, without going through cobra: a manually
// corrupted row must make Verify report ok=false with at least two
// buckets, which check-database turns into a non-nil error (exit 1).
func TestCheckDatabaseFlagsIntegrityViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anagramist.db")
	st, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Push(store.Row{Placed: "bish", Remaining: "abhobss", Status: store.OK}))
	ok, _, err := st.Verify()
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, st.Push(store.Row{Placed: "other", Remaining: "zzz", Status: store.OK}))
	ok, histogram, err := st.Verify()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, len(histogram), 2)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "sqlite file should have been created on disk")
}
