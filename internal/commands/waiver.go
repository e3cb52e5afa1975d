package commands

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/waiver"
)

func newWaiverCommand() *cobra.Command {
	var (
		accountID    string
		balance      float64
		monthlyTxns  int
		tenureMonths int
		status       string
		premium      bool
		newCustomer  bool
		annualFee    float64
		monthlyFee   float64
	)

	cmd := &cobra.Command{
		Use:   "waiver",
		Short: "Evaluate the fee-waiver decision table for one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			decision := waiver.Evaluate(waiver.Request{
				AccountID:           accountID,
				Balance:             decimal.NewFromFloat(balance),
				MonthlyTransactions: monthlyTxns,
				TenureMonths:        tenureMonths,
				Status:              model.AccountStatus(status),
				Premium:             premium,
				NewCustomer:         newCustomer,
				AnnualFee:           decimal.NewFromFloat(annualFee),
				MonthlyFee:          decimal.NewFromFloat(monthlyFee),
			})
			return printJSON(cmd, decision)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account identifier")
	cmd.Flags().Float64Var(&balance, "balance", 0, "current balance")
	cmd.Flags().IntVar(&monthlyTxns, "monthly-transactions", 0, "transactions in the last month")
	cmd.Flags().IntVar(&tenureMonths, "tenure-months", 0, "months since the account opened")
	cmd.Flags().StringVar(&status, "status", string(model.AccountActive), "account status")
	cmd.Flags().BoolVar(&premium, "premium", false, "premium customer")
	cmd.Flags().BoolVar(&newCustomer, "new-customer", false, "customer in the first 3 months")
	cmd.Flags().Float64Var(&annualFee, "annual-fee", 0, "annual card fee")
	cmd.Flags().Float64Var(&monthlyFee, "monthly-fee", 0, "monthly maintenance fee")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}
