package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/report"
)

func newSummaryCommand() *cobra.Command {
	var (
		customerID string
		accountID  string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a customer or account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cust, accts, led := stores(cfg)
			svc := report.NewService(cust, accts, led)

			switch {
			case customerID != "":
				summary, ok, err := svc.Customer(customerID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("customer %s not found", customerID)
				}
				return printJSON(cmd, summary)
			case accountID != "":
				summary, ok, err := svc.Account(accountID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("account %s not found", accountID)
				}
				return printJSON(cmd, summary)
			default:
				return fmt.Errorf("one of --customer or --account is required")
			}
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "customer identifier")
	cmd.Flags().StringVar(&accountID, "account", "", "account identifier")
	return cmd
}
