package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/seed"
)

func newSeedCommand() *cobra.Command {
	var (
		customers int
		rngSeed   int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample customers, accounts, and ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			counts, err := seed.Generate(cfg.DataDir, seed.Params{
				Customers: customers,
				Seed:      rngSeed,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d customers, %d accounts, %d transactions to %s\n",
				counts.Customers, counts.Accounts, counts.Transactions, cfg.DataDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&customers, "customers", 120, "number of customers to generate")
	cmd.Flags().Int64Var(&rngSeed, "seed", 0, "random seed (0 = time-based)")
	return cmd
}
