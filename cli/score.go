package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lonnen/anagramist/internal/store"
)

func newScoreCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [words...]",
		Short: "score a sentence once, without recording it in the search tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			sentence := strings.Join(args, " ")

			p, err := cfg.buildPuzzle()
			if err != nil {
				return err
			}

			// Assessment needs a Store to compute per-prefix remaining
			// letters against, but scoring a sentence once is explicitly
			// not supposed to touch the durable database.
			mem := store.NewMemory()
			cfg.seedStore(mem)
			s := cfg.newSolver(p, mem)

			rows, solution, err := s.Assess(context.Background(), sentence)
			if err != nil {
				return err
			}

			for _, row := range rows {
				cmd.Printf("%.4f\t%s\n", row.MeanScore, row.Placed)
			}
			if solution != "" {
				cmd.Printf("WINNER: %s\n", solution)
			}
			return nil
		},
	}
	return cmd
}
