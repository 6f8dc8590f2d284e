package scorer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniversalAlignsWithWords(t *testing.T) {
	u := scorer.NewUniversal()
	f := fragment.New("I said hello")

	got, err := u.Score(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, got, len(f.Words))
	for i, ws := range got {
		assert.Equal(t, f.Words[i], ws.Word)
		assert.Equal(t, -1.0, ws.LogScore)
	}
}

func TestRemoteAlignedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scores": []map[string]any{
				{"word": "I", "log_score": -2.0},
				{"word": "said", "log_score": -3.5},
			},
		})
	}))
	defer srv.Close()

	rs := scorer.NewRemote(srv.URL)
	f := fragment.New("I said")

	got, err := rs.Score(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "I", got[0].Word)
	assert.Equal(t, -3.5, got[1].LogScore)
}

func TestRemoteMisalignedResponseIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scores": []map[string]any{
				{"word": "nope", "log_score": -2.0},
			},
		})
	}))
	defer srv.Close()

	rs := scorer.NewRemote(srv.URL)
	f := fragment.New("I said")

	_, err := rs.Score(context.Background(), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, scorer.ErrAlignment)
}
