// Package solver implements the selection / expansion / assessment /
// backpropagation cycle that drives the search over candidate sentences.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"
	"github.com/lonnen/anagramist/internal/scorer"
	"github.com/lonnen/anagramist/internal/store"
	"github.com/lonnen/anagramist/internal/validator"
	"github.com/lonnen/anagramist/internal/vocab"
	"github.com/lonnen/anagramist/internal/wrand"
)

// EXPLORATION_SCORE is the sentinel log-score assigned to the root
// placeholder row before it has ever been assessed, giving it a finite,
// sampleable MeanScore. Selection does not weight by it: it picks uniformly
// among a node's stored OK children, and unexplored children are never
// scored against explored ones.
const EXPLORATION_SCORE = -40.0

// MAGIC_SCORE_THRESHOLD is a below-which-it's-hopeless cutoff carried over
// from the original implementation's pruning heuristic: a prefix whose
// shifted geometric mean falls below it is stored Invalid by assess
// instead of OK, pruning the branch before anything deeper is persisted.
const MAGIC_SCORE_THRESHOLD = -50.0

// ErrNoRoot is returned by Run when the store has no row rooted at R and a
// placeholder could not be inserted.
var ErrNoRoot = errors.New("solver: could not establish root row")

// errDeadEnd is returned internally when selection cannot find any
// expandable node rooted at R; Run treats it as a normal (solutionless)
// termination rather than surfacing it to the caller.
var errDeadEnd = errors.New("solver: selection found no expandable node")

// Budget bounds a single Run. Zero values mean "unbounded" for the
// corresponding dimension, except MaxExpansionsPerIteration, whose zero
// value is replaced with the spec default of 100.
type Budget struct {
	MaxIterations             int
	MaxWallClock              time.Duration
	MaxExpansionsPerIteration int
}

func (b Budget) expansionsPerIteration() int {
	if b.MaxExpansionsPerIteration <= 0 {
		return 100
	}
	return b.MaxExpansionsPerIteration
}

// Result reports the outcome of a Run.
type Result struct {
	// Solved is true iff a hard-validated sentence was found.
	Solved bool
	// Sentence is the winning sentence when Solved is true.
	Sentence string
	// Iterations is the number of outer iterations performed.
	Iterations int
}

// Solver owns the transient current-candidate state of a search; the Store
// owns every row it ever produces.
type Solver struct {
	Bank   multiset.Multiset
	Vocab  *vocab.Vocabulary
	Mode   validator.Mode
	Scorer scorer.Scorer
	Store  store.Store
	Logger zerolog.Logger
	// Rand drives the uniform-random choices in selection and expansion.
	// It defaults to an unseeded (run-to-run random) source; set it to a
	// wrand.New(seed) instance for a reproducible run.
	Rand *rand.Rand
}

// New builds a Solver over bank (the literal letter bank string) using v
// and sc, persisting to st. Logger starts as a disabled logger; set the
// field to enable logging.
func New(bank string, v *vocab.Vocabulary, mode validator.Mode, sc scorer.Scorer, st store.Store) *Solver {
	return &Solver{
		Bank:   multiset.Of(bank),
		Vocab:  v,
		Mode:   mode,
		Scorer: sc,
		Store:  st,
		Logger: zerolog.Nop(),
		Rand:   wrand.New(rand.Uint64()),
	}
}

// Run executes the outer solve loop from root (typically "" or "I" in
// c1663 mode) until a budget is exhausted or a solution is found.
func (s *Solver) Run(ctx context.Context, root string, budget Budget) (Result, error) {
	if err := s.ensureRoot(root); err != nil {
		return Result{}, err
	}

	start := time.Now()
	for iteration := 0; ; iteration++ {
		if budget.MaxIterations > 0 && iteration >= budget.MaxIterations {
			s.Logger.Info().Int("iterations", iteration).Msg("max iterations reached")
			return Result{Iterations: iteration}, nil
		}
		if budget.MaxWallClock > 0 && time.Since(start) > budget.MaxWallClock {
			s.Logger.Info().Dur("elapsed", time.Since(start)).Msg("wall clock budget exhausted")
			return Result{Iterations: iteration}, nil
		}
		if err := ctx.Err(); err != nil {
			return Result{Iterations: iteration}, err
		}

		selected, err := s.selection(root)
		if err != nil {
			if errors.Is(err, errDeadEnd) {
				s.Logger.Info().Str("root", root).Msg("search space exhausted")
				return Result{Iterations: iteration}, nil
			}
			return Result{Iterations: iteration}, fmt.Errorf("solver: selection: %w", err)
		}

		for i := 0; i < budget.expansionsPerIteration(); i++ {
			leaf := s.expand(selected)

			rows, solution, err := s.assess(ctx, leaf)
			if err != nil {
				s.Logger.Warn().Err(err).Str("leaf", leaf.Sentence).Msg("assessment failed, skipping expansion")
				continue
			}

			if err := s.backpropagate(rows); err != nil {
				return Result{Iterations: iteration}, fmt.Errorf("solver: backpropagation: %w", err)
			}

			if solution != "" {
				return Result{Solved: true, Sentence: solution, Iterations: iteration + 1}, nil
			}
		}
	}
}

// ensureRoot inserts the sentinel placeholder row for root if the store
// does not already have one, per spec §4.6.
func (s *Solver) ensureRoot(root string) error {
	_, ok, err := s.Store.Get(root)
	if err != nil {
		return fmt.Errorf("solver: reading root: %w", err)
	}
	if ok {
		return nil
	}

	f := fragment.New(root)
	remaining := s.Bank.Sub(f.Letters)
	if !remaining.NonNegative() {
		return fmt.Errorf("%w: root %q is not spellable from the bank", ErrNoRoot, root)
	}

	row := store.Row{
		Placed:          f.Sentence,
		Remaining:       remaining.Elements(),
		Parent:          parentOf(f.Words),
		Score:           EXPLORATION_SCORE,
		CumulativeScore: EXPLORATION_SCORE,
		MeanScore:       EXPLORATION_SCORE,
		Status:          store.OK,
	}
	if err := s.Store.Push(row); err != nil {
		return fmt.Errorf("%w: %w", ErrNoRoot, err)
	}
	return nil
}

func parentOf(words []string) string {
	if len(words) <= 1 {
		return ""
	}
	return fragment.Join(words[:len(words)-1])
}

// selection descends from root, at each node picking uniformly among its
// stored OK children, stopping at the first node that has at least one
// legal next word not yet present in the store. A node all of whose legal
// next words are already excluded is a dead end: it is trimmed and marked
// FullyExplored, and selection retries from root.
func (s *Solver) selection(root string) (store.Row, error) {
	node := root
	for {
		row, ok, err := s.Store.Get(node)
		if err != nil {
			return store.Row{}, err
		}
		if !ok {
			return store.Row{}, fmt.Errorf("solver: no row for %q", node)
		}

		remaining := multiset.Of(row.Remaining)
		status, err := s.childStatus(row.Placed, remaining)
		if err != nil {
			return store.Row{}, err
		}

		if status.hasUnexpanded {
			return row, nil
		}
		if len(status.okChildren) == 0 {
			// Every legal next word is already stored with a non-OK
			// status (or there are no legal next words at all): N is a
			// dead end.
			if _, err := s.Store.Trim(row.Placed); err != nil {
				return store.Row{}, err
			}
			if _, err := s.Store.SetStatus(row.Placed, store.FullyExplored); err != nil {
				return store.Row{}, err
			}
			if row.Placed == root {
				return store.Row{}, errDeadEnd
			}
			node = root
			continue
		}

		// All legal children are already stored and at least one is
		// still OK: descend into one of them. Picked directly from the
		// already-known OK children rather than re-deriving descent
		// through Store.Sample(row.Placed), whose candidate pool
		// includes row.Placed itself and could otherwise re-select the
		// very node that was just found to have no unexpanded child.
		node = status.okChildren[s.Rand.IntN(len(status.okChildren))]
	}
}

// childExpansion summarizes, for a node's legal next words, whether any is
// absent from the store (hasUnexpanded) and which stored children still
// carry status OK (okChildren).
type childExpansion struct {
	hasUnexpanded bool
	okChildren    []string
}

func (s *Solver) childStatus(placed string, remaining multiset.Multiset) (childExpansion, error) {
	var out childExpansion
	for w := range s.Vocab.SpellableFrom(remaining) {
		candidate := appendWord(placed, w)
		row, ok, err := s.Store.Get(candidate)
		if err != nil {
			return childExpansion{}, err
		}
		if !ok {
			out.hasUnexpanded = true
			continue
		}
		if row.Status == store.OK {
			out.okChildren = append(out.okChildren, row.Placed)
		}
	}
	return out, nil
}

func appendWord(placed, word string) string {
	if placed == "" {
		return word
	}
	return placed + " " + word
}

// expand runs a uniform-random walk from selected until soft validation
// fails or no legal next word remains, returning the terminal Fragment.
func (s *Solver) expand(selected store.Row) fragment.Fragment {
	placed := fragment.New(selected.Placed)
	remaining := multiset.Of(selected.Remaining)

	for {
		var candidates []string
		for w := range s.Vocab.SpellableFrom(remaining) {
			candidates = append(candidates, w)
		}
		if len(candidates) == 0 {
			return placed
		}

		word := candidates[s.Rand.IntN(len(candidates))]
		nextPlaced := fragment.New(appendWord(placed.Sentence, word))
		nextRemaining := remaining.Sub(multiset.Of(word))

		if !validator.Soft(nextPlaced, nextRemaining, s.Vocab, s.Mode) {
			return placed
		}
		placed = nextPlaced
		remaining = nextRemaining
	}
}

// Assess scores sentence via the Scorer and computes the per-prefix rows
// assessment would backpropagate, without writing them to the Store. It is
// the implementation behind the CLI's one-shot `score` verb (spec §6).
func (s *Solver) Assess(ctx context.Context, sentence string) ([]store.Row, string, error) {
	return s.assess(ctx, fragment.New(sentence))
}

// AssessAndStore scores sentence and backpropagates the resulting rows (and
// every ancestor prefix) into s.Store, the implementation behind the CLI's
// `candidates --validate` flag: a manually-supplied candidate that has never
// been through expansion still gets its ancestors backfilled before it is
// reported on.
func (s *Solver) AssessAndStore(ctx context.Context, sentence string) ([]store.Row, string, error) {
	rows, solution, err := s.assess(ctx, fragment.New(sentence))
	if err != nil {
		return nil, "", err
	}
	if err := s.backpropagate(rows); err != nil {
		return nil, "", fmt.Errorf("solver: backpropagation: %w", err)
	}
	return rows, solution, nil
}

// assess scores leaf via the Scorer, computes per-prefix cumulative and
// shifted-geometric-mean scores per spec §4.6, and hard-validates each
// prefix. It returns the rows to backpropagate and, if a prefix
// hard-validated, the winning sentence.
func (s *Solver) assess(ctx context.Context, leaf fragment.Fragment) ([]store.Row, string, error) {
	words := leaf.Words
	if len(words) == 0 {
		return nil, "", nil
	}

	scores, err := s.Scorer.Score(ctx, leaf)
	if err != nil {
		return nil, "", err
	}

	logScores := make([]float64, len(scores))
	for i, ws := range scores {
		logScores[i] = ws.LogScore
	}

	rows := make([]store.Row, 0, len(words))
	cumulative := 0.0
	solution := ""

	for i := range words {
		f := fragment.New(fragment.Join(words[:i+1]))
		remaining := s.Bank.Sub(f.Letters)

		score := logScores[i]
		cumulative += score
		mean := shiftedGeometricMean(logScores[:i+1])
		status := store.OK

		hard := validator.Hard(f, remaining, s.Vocab, s.Mode)
		switch {
		case hard:
			score = math.Inf(1)
			mean = math.Inf(1)
			solution = f.Sentence
		case i == len(words)-1:
			score = math.Inf(-1)
			mean = math.Inf(-1)
			status = store.Invalid
		case mean < MAGIC_SCORE_THRESHOLD:
			// Prune a branch that is hopeless on the evidence collected so
			// far, matching the original's threshold cutoff: a prefix this
			// poor is stored Invalid rather than OK so selection never
			// revisits it, and nothing deeper than it is assessed.
			status = store.Invalid
		}

		rows = append(rows, store.Row{
			Placed:          f.Sentence,
			Remaining:       remaining.Elements(),
			Parent:          parentOf(f.Words),
			Score:           score,
			CumulativeScore: cumulative,
			MeanScore:       mean,
			Status:          status,
		})

		if solution != "" || status == store.Invalid {
			break
		}
	}

	return rows, solution, nil
}

// shiftedGeometricMean computes geomean(score_j + off) - off where
// off = abs(min(scores))+1, guarding against negative log-scores while
// preserving relative ordering. It is recomputed from the full prefix
// vector each time, not incrementally, since off depends on the current
// minimum (spec §9).
func shiftedGeometricMean(scores []float64) float64 {
	if len(scores) == 0 {
		return EXPLORATION_SCORE
	}
	off := wrand.Shift(scores)

	sumLog := 0.0
	for _, sc := range scores {
		sumLog += math.Log(sc + off)
	}
	return math.Exp(sumLog/float64(len(scores))) - off
}

// backpropagate upserts each row into the Store in prefix order. Rows that
// are a strict prefix of the previously selected node are already present
// and unchanged, but pushing them again is harmless (idempotent push).
func (s *Solver) backpropagate(rows []store.Row) error {
	for _, row := range rows {
		if err := s.Store.Push(row); err != nil {
			return fmt.Errorf("row %q: %w", row.Placed, err)
		}
	}
	return nil
}
