package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lonnen/anagramist/internal/store"
)

func newCheckDatabaseCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "check-database",
		Short: "verify every stored row agrees on the same letter bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cfg.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ok, histogram, err := st.Verify()
			if err != nil {
				return err
			}

			if cfg.verbose {
				if ok {
					cmd.Printf("database %s is internally consistent\n", cfg.database)
				} else {
					cmd.Printf("multiple letter banks found in database %s\n", cfg.database)
				}
				for bank, count := range histogram {
					cmd.Printf("%s, %d\n", bank, count)
				}
			}

			if !ok {
				return fmt.Errorf("%w: %d distinct letter banks", store.ErrIntegrityViolation, len(histogram))
			}
			return nil
		},
	}
}
