package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lonnen/anagramist/internal/inspect"
	"github.com/lonnen/anagramist/internal/solver"
	"github.com/lonnen/anagramist/internal/store"
)

func newCandidatesCmd(cfg *config) *cobra.Command {
	var number int
	var trim bool
	var setStatus int
	var hasStatus bool
	var quiet bool
	var validate bool

	cmd := &cobra.Command{
		Use:   "candidates [words...]",
		Short: "examine and manipulate an individual candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			placed := strings.Join(args, " ")
			cmd.Printf("%q\n\n", placed)

			p, err := cfg.buildPuzzle()
			if err != nil {
				return err
			}
			st, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if validate {
				s := cfg.newSolver(p, st)
				if _, solution, err := s.AssessAndStore(context.Background(), placed); err != nil {
					return err
				} else if solution != "" {
					cmd.Printf("WINNER: %s\n", solution)
				}
			}

			if trim {
				n, err := st.Trim(placed)
				if err != nil {
					return err
				}
				cmd.Printf("trimmed %d descendants\n", n)
			}

			if hasStatus {
				effect, err := st.SetStatus(placed, store.Status(setStatus))
				if err != nil {
					return err
				}
				cmd.Printf("set status: %s\n", effectName(effect))
			}

			cand, err := inspect.RetrieveCandidate(st, p.Vocab, placed, number)
			if err != nil {
				cmd.Println("candidate not yet explored")
				return solver.ErrCandidateNotFound
			}

			if quiet {
				return nil
			}

			printHistogram(cmd, cand.ChildStatusCounts)
			printTopK(cmd, "Top next candidates:", cand.TopChildren)
			printTopK(cmd, "Top descendants: (mean score)", cand.TopDescendants)

			return nil
		},
	}

	cmd.Flags().IntVarP(&number, "number", "n", 5, "maximum number of child nodes to show")
	cmd.Flags().BoolVarP(&trim, "trim", "t", false, "remove all descendants")
	cmd.Flags().IntVarP(&setStatus, "status", "s", 0, "set the candidate's status")
	cmd.Flags().BoolVar(&hasStatus, "set-status", false, "apply --status (required because 0 is a valid status)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the candidate summary")
	cmd.Flags().BoolVar(&validate, "validate", false, "assess the candidate and backfill it and its ancestors into the store before reporting")

	return cmd
}

func effectName(e store.StatusEffect) string {
	switch e {
	case store.NoSuchRow:
		return "no such row"
	case store.AlreadySet:
		return "already set"
	case store.Updated:
		return "updated"
	default:
		return "unknown"
	}
}

func printHistogram(cmd *cobra.Command, histogram map[string]int) {
	cmd.Println("Child node demographics:")
	cmd.Println("-------------------------")
	keys := make([]string, 0, len(histogram))
	for k := range histogram {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%s: %d\n", k, histogram[k])
	}
	cmd.Println()
}

func printTopK(cmd *cobra.Command, title string, rows []store.Row) {
	cmd.Println(title)
	cmd.Println(strings.Repeat("-", len(title)))
	for _, r := range rows {
		cmd.Printf("%.2f: %s\n", r.MeanScore, r.Placed)
	}
	cmd.Println()
}
