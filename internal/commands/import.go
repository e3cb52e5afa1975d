package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/audit"
	"github.com/teller-dev/teller/internal/statement"
)

func newImportCommand() *cobra.Command {
	var (
		accountID string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bank statement CSVs from <data-dir>/import into the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			_, accts, led := stores(cfg)

			parser := statement.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			files, err := statement.Scan(cfg.DataDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			for _, file := range files {
				f, err := os.Open(file.Path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file.Name, err)
				}
				txns, err := parser.Parse(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("parsing %s: %w", file.Name, err)
				}

				n, err := statement.Import(accts, led, accountID, txns)
				if err != nil {
					return fmt.Errorf("importing %s: %w", file.Name, err)
				}
				if err := statement.MarkProcessed(cfg.DataDir, file.Name); err != nil {
					return err
				}
				if err := audit.Append(cfg.DataDir, []audit.Entry{{
					Timestamp: time.Now(),
					Actor:     "cli",
					Action:    "import_statement",
					EntityID:  accountID,
					Details:   fmt.Sprintf("%s: %d entries (%s)", file.Name, n, parser.Format()),
				}}); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s into %s\n", n, file.Name, accountID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "target account ID")
	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
