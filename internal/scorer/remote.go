package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lonnen/anagramist/internal/fragment"
)

// Remote binds Scorer to an out-of-process language-model inference
// backend over HTTP, per the request/response interface the design notes
// call for: the core only needs single-fragment scoring, so the wire
// contract is a single synchronous POST.
type Remote struct {
	// Endpoint is the URL the scoring request is POSTed to.
	Endpoint string
	// Context is an optional fixed puzzle-specific prompt prefix (used for
	// c1663) that the backend should condition on.
	Context string
	// Client is the HTTP client used to issue requests. Defaults to
	// http.DefaultClient's timeout behavior when nil.
	Client *http.Client
}

// NewRemote returns a Remote scorer with a bounded-timeout client.
func NewRemote(endpoint string) *Remote {
	return &Remote{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type remoteRequest struct {
	Sentence string   `json:"sentence"`
	Words    []string `json:"words"`
	Context  string   `json:"context,omitempty"`
}

type remoteWordScore struct {
	Word     string  `json:"word"`
	LogScore float64 `json:"log_score"`
}

type remoteResponse struct {
	Scores []remoteWordScore `json:"scores"`
}

// Score implements Scorer by POSTing the fragment to Endpoint and parsing
// the aligned per-word log-scores from the response.
func (r *Remote) Score(ctx context.Context, f fragment.Fragment) ([]WordScore, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(remoteRequest{
		Sentence: f.Sentence,
		Words:    f.Words,
		Context:  r.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("scorer: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scorer: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scorer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scorer: backend returned status %d", resp.StatusCode)
	}

	var parsed remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("scorer: decoding response: %w", err)
	}

	got := make([]WordScore, len(parsed.Scores))
	for i, s := range parsed.Scores {
		got[i] = WordScore{Word: s.Word, LogScore: s.LogScore}
	}

	if err := checkAlignment(f, got); err != nil {
		return nil, err
	}

	return got, nil
}
