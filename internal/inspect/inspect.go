// Package inspect implements operator-facing retrieval over a solved or
// in-progress search tree: per-node child status histograms and top-K
// descendants by mean score.
package inspect

import (
	"fmt"
	"sort"

	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/lonnen/anagramist/internal/store"
	"github.com/lonnen/anagramist/internal/vocab"
)

// Candidate is the result of RetrieveCandidate: the node itself plus child
// and descendant summaries an operator can use to decide where to steer
// the search next.
type Candidate struct {
	Node              store.Row
	ChildStatusCounts map[string]int
	TopChildren       []store.Row
	TopDescendants    []store.Row
}

// RetrieveCandidate fetches node's row and computes its child-status
// histogram (counting every legal next word, with words absent from the
// store bucketed as UNEXPLORED), plus the top-limit OK children and
// descendants by MeanScore.
func RetrieveCandidate(st store.Store, v *vocab.Vocabulary, placed string, limit int) (Candidate, error) {
	node, ok, err := st.Get(placed)
	if err != nil {
		return Candidate{}, fmt.Errorf("inspect: get %q: %w", placed, err)
	}
	if !ok {
		return Candidate{}, fmt.Errorf("inspect: no such candidate %q", placed)
	}

	histogram := make(map[string]int)
	remaining := multiset.Of(node.Remaining)
	for w := range v.SpellableFrom(remaining) {
		child := appendWord(placed, w)
		row, ok, err := st.Get(child)
		if err != nil {
			return Candidate{}, fmt.Errorf("inspect: get child %q: %w", child, err)
		}
		if !ok {
			histogram[store.Unexplored.String()]++
			continue
		}
		histogram[row.Status.String()]++
	}

	stored, err := st.GetChildren(placed)
	if err != nil {
		return Candidate{}, fmt.Errorf("inspect: children of %q: %w", placed, err)
	}
	// The root row "" has Parent "" and so is listed among its own
	// children; a node is never its own child.
	children := make([]store.Row, 0, len(stored))
	for _, r := range stored {
		if r.Placed != placed {
			children = append(children, r)
		}
	}
	descendants, err := st.GetDescendants(placed)
	if err != nil {
		return Candidate{}, fmt.Errorf("inspect: descendants of %q: %w", placed, err)
	}

	return Candidate{
		Node:              node,
		ChildStatusCounts: histogram,
		TopChildren:       topOKByMeanScore(children, limit),
		TopDescendants:    topOKByMeanScore(descendants, limit),
	}, nil
}

func appendWord(placed, word string) string {
	if placed == "" {
		return word
	}
	return placed + " " + word
}

// topOKByMeanScore returns up to limit rows with status OK, sorted by
// MeanScore descending.
func topOKByMeanScore(rows []store.Row, limit int) []store.Row {
	ok := make([]store.Row, 0, len(rows))
	for _, r := range rows {
		if r.Status == store.OK {
			ok = append(ok, r)
		}
	}
	sort.Slice(ok, func(i, j int) bool {
		return ok[i].MeanScore > ok[j].MeanScore
	})
	if limit > 0 && len(ok) > limit {
		ok = ok[:limit]
	}
	return ok
}
