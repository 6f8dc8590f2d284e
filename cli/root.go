// Package cli implements the anagramist command-line surface: the
// operator verbs that drive the search engine without being part of it.
package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lonnen/anagramist/internal/puzzle"
	"github.com/lonnen/anagramist/internal/scorer"
	"github.com/lonnen/anagramist/internal/solver"
	"github.com/lonnen/anagramist/internal/store"
	"github.com/lonnen/anagramist/internal/vocab"
	"github.com/lonnen/anagramist/internal/wrand"
)

// config collects the global flags every subcommand reads.
type config struct {
	database       string
	letters        string
	suppressC1663  bool
	vocabPath      string
	scorerEndpoint string
	seed           uint64
	verbose        bool

	logger zerolog.Logger
}

// Execute builds the root command and runs it, returning the process exit
// code: 0 for success, solution found, or a clean run; 1 for a candidate
// not found or an integrity violation, per spec §6.
func Execute() int {
	root, cfg := newRootCmd()

	exitCode := 0
	if err := root.Execute(); err != nil {
		cfg.logger.Error().Err(err).Msg("command failed")
		exitCode = 1
	}
	return exitCode
}

// newRootCmd builds the command tree and its shared config, separated from
// Execute so tests can set args and capture output without touching
// os.Args or the process exit code.
func newRootCmd() (*cobra.Command, *config) {
	cfg := &config{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "anagramist",
		Short:         "a solver for dinocomics 1663-style cryptoanagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfg.database, "database", "d", "anagramist.db", "path to the sqlite database to use for persistence")
	root.PersistentFlags().StringVarP(&cfg.letters, "letters", "l", puzzle.C1663Letters, "the bank of characters to use (default: the Comic 1663 letter bank)")
	root.PersistentFlags().BoolVar(&cfg.suppressC1663, "suppress-c1663", false, "disable c1663 heuristics even if the letter bank matches")
	root.PersistentFlags().StringVar(&cfg.vocabPath, "vocab", "", "path to a newline-delimited vocabulary file")
	root.PersistentFlags().StringVar(&cfg.scorerEndpoint, "scorer-endpoint", "", "HTTP endpoint of a remote scorer; omit to use the deterministic universal scorer")
	root.PersistentFlags().Uint64Var(&cfg.seed, "seed", 42, "seed for the random walk")
	root.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "print configuration and extra progress detail")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if cfg.verbose {
			level = zerolog.DebugLevel
		}
		cfg.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		if cfg.verbose {
			cfg.logger.Info().
				Str("letters", sortedLetters(cfg.letters)).
				Bool("c1663", cfg.isC1663()).
				Str("database", cfg.database).
				Uint64("seed", cfg.seed).
				Msg("configuration")
		}
	}

	root.AddCommand(
		newSolveCmd(cfg),
		newCandidatesCmd(cfg),
		newCheckDatabaseCmd(cfg),
		newScoreCmd(cfg),
	)

	return root, cfg
}

func (c *config) isC1663() bool {
	return c.letters == puzzle.C1663Letters && !c.suppressC1663
}

func (c *config) loadVocab() (*vocab.Vocabulary, error) {
	if c.vocabPath == "" {
		return vocab.New(nil), nil
	}
	return vocab.Load(c.vocabPath)
}

func (c *config) buildPuzzle() (*puzzle.Puzzle, error) {
	v, err := c.loadVocab()
	if err != nil {
		return nil, err
	}
	if c.isC1663() {
		return puzzle.NewC1663(v), nil
	}
	return puzzle.NewGeneral(c.letters, v), nil
}

func (c *config) openStore() (store.Store, error) {
	st, err := store.OpenSQLite(c.database)
	if err != nil {
		return nil, err
	}
	c.seedStore(st)
	return st, nil
}

func (c *config) buildScorer() scorer.Scorer {
	if c.scorerEndpoint == "" {
		return scorer.NewUniversal()
	}
	return scorer.NewRemote(c.scorerEndpoint)
}

// seedStore pins st's Sample draws to c.seed when st supports it, so a run
// started with --seed is reproducible end to end.
func (c *config) seedStore(st store.Store) {
	if sd, ok := st.(store.Seedable); ok {
		sd.SetSeed(c.seed)
	}
}

// newSolver builds a Solver over st for puzzle p, wired with this config's
// logger and a walk RNG pinned to --seed.
func (c *config) newSolver(p *puzzle.Puzzle, st store.Store) *solver.Solver {
	s := solver.New(p.Letters, p.Vocab, p.Mode, c.buildScorer(), st)
	s.Logger = c.logger
	s.Rand = wrand.New(c.seed)
	return s
}

func sortedLetters(letters string) string {
	chars := strings.Split(letters, "")
	sort.Strings(chars)
	return strings.Join(chars, "")
}
