package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lonnen/anagramist/internal/solver"
)

func newSolveCmd(cfg *config) *cobra.Command {
	var maxIterations int
	var maxWallClock time.Duration
	var maxExpansions int

	cmd := &cobra.Command{
		Use:   "solve [root words...]",
		Short: "run the search loop, optionally starting from a partial sentence",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cfg.buildPuzzle()
			if err != nil {
				return err
			}
			st, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			root := p.Root
			if len(args) > 0 {
				root = strings.Join(args, " ")
			}

			s := cfg.newSolver(p, st)

			cfg.logger.Info().Str("root", root).Msg("searching for solutions")

			result, err := s.Run(context.Background(), root, solver.Budget{
				MaxIterations:             maxIterations,
				MaxWallClock:              maxWallClock,
				MaxExpansionsPerIteration: maxExpansions,
			})
			if err != nil {
				return err
			}

			if result.Solved {
				cmd.Printf("WINNER: %s\n", result.Sentence)
			} else {
				cmd.Printf("no solution found after %d iterations\n", result.Iterations)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "maximum outer iterations (0 = unbounded)")
	cmd.Flags().DurationVar(&maxWallClock, "max-time", 0, "maximum wall-clock duration (0 = unbounded)")
	cmd.Flags().IntVar(&maxExpansions, "max-expansions", 100, "maximum expansions per selected node per iteration")

	return cmd
}
