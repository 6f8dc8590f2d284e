package store

import (
	"math/rand/v2"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/lonnen/anagramist/internal/wrand"
)

// Memory is an in-process, map-backed Store. It is used by tests and by
// the CLI's one-shot `score` command, which assesses a sentence without
// needing durability.
type Memory struct {
	rows map[string]Row
	rng  *rand.Rand
}

// NewMemory returns an empty Memory store, with Sample drawing from an
// unseeded (run-to-run random) source until SetSeed pins it.
func NewMemory() *Memory {
	return &Memory{rows: make(map[string]Row), rng: wrand.New(rand.Uint64())}
}

// SetSeed pins Sample's draws to a deterministic sequence, for the CLI's
// --seed flag.
func (m *Memory) SetSeed(seed uint64) {
	m.rng = wrand.New(seed)
}

func (m *Memory) Get(placed string) (Row, bool, error) {
	row, ok := m.rows[placed]
	return row, ok, nil
}

func (m *Memory) GetChildren(placed string) ([]Row, error) {
	var out []Row
	for _, row := range m.rows {
		if row.Parent == placed {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *Memory) GetDescendants(placed string) ([]Row, error) {
	var out []Row
	for p, row := range m.rows {
		if isStrictDescendant(p, placed) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *Memory) Push(row Row) error {
	existing, ok := m.rows[row.Placed]
	if ok {
		if existing.Parent != row.Parent {
			return ErrParentMismatch
		}
		if existing.Remaining != row.Remaining {
			return ErrRemainingMismatch
		}
	}
	existing.Placed = row.Placed
	existing.Remaining = row.Remaining
	existing.Parent = row.Parent
	existing.Score = row.Score
	existing.CumulativeScore = row.CumulativeScore
	existing.MeanScore = row.MeanScore
	existing.Status = row.Status
	m.rows[row.Placed] = existing
	return nil
}

func (m *Memory) Sample(prefix string) (Row, bool, error) {
	var candidates []Row
	for p, row := range m.rows {
		if row.Status != OK {
			continue
		}
		if isRootedAt(p, prefix) {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return Row{}, false, nil
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.MeanScore
	}
	shift := wrand.Shift(scores)
	weights := make([]float64, len(candidates))
	for i, s := range scores {
		weights[i] = wrand.Weight(s, shift)
	}

	idx := wrand.Choose(m.rng, weights)
	if idx < 0 {
		return Row{}, false, nil
	}
	return candidates[idx], true, nil
}

func (m *Memory) SetStatus(placed string, newStatus Status) (StatusEffect, error) {
	row, ok := m.rows[placed]
	if !ok {
		return NoSuchRow, nil
	}
	if row.Status == newStatus {
		return AlreadySet, nil
	}
	row.Status = newStatus
	m.rows[placed] = row
	return Updated, nil
}

func (m *Memory) Trim(placed string) (int, error) {
	count := 0
	for p := range m.rows {
		if isStrictDescendant(p, placed) {
			delete(m.rows, p)
			count++
		}
	}
	return count, nil
}

func (m *Memory) Verify() (bool, map[string]int, error) {
	histogram := make(map[string]int)
	for _, row := range m.rows {
		combined := fragment.New(row.Placed).Letters.Add(multiset.Of(row.Remaining))
		histogram[combined.Elements()]++
	}
	return len(histogram) <= 1, histogram, nil
}

func (m *Memory) Len() (int, error) {
	return len(m.rows), nil
}

func (m *Memory) Close() error {
	return nil
}

var _ Store = (*Memory)(nil)
