package commands

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/teller-dev/teller/internal/report"
)

func newDormantCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "dormant",
		Short: "List accounts with no recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.Defaults.DaysInactive
			}

			results, err := engine(cfg).DormantAccounts(days)
			if err != nil {
				return err
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().IntVar(&days, "days", 180, "minimum days since last transaction")
	return cmd
}

func newDormantLargeCommand() *cobra.Command {
	var (
		days      int
		threshold float64
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "dormant-large",
		Short: "List dormant accounts with a large historical transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.Defaults.DaysInactive
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Defaults.LargeAmount
			}

			results, err := engine(cfg).DormantWithLargeTransactions(days, decimal.NewFromFloat(threshold))
			if err != nil {
				return err
			}

			if write {
				if err := report.WriteDormantReport(cfg.DataDir, results); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows)\n", report.DormantReportFile, len(results))
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().IntVar(&days, "days", 180, "minimum days since last transaction")
	cmd.Flags().Float64Var(&threshold, "threshold", 1000, "minimum historical transaction amount")
	cmd.Flags().BoolVar(&write, "write-report", false, "also write a CSV report under the data dir")
	return cmd
}

func newSalaryCommand() *cobra.Command {
	var min float64

	cmd := &cobra.Command{
		Use:   "salary",
		Short: "List accounts with salary deposits above a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min") {
				min = cfg.Defaults.SalaryMin
			}

			results, err := engine(cfg).SalaryDepositAccounts(decimal.NewFromFloat(min))
			if err != nil {
				return err
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().Float64Var(&min, "min", 500, "minimum deposit amount")
	return cmd
}

func newHighBalanceCommand() *cobra.Command {
	var min float64

	cmd := &cobra.Command{
		Use:   "high-balance",
		Short: "List accounts with balance above a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min") {
				min = cfg.Defaults.HighBalanceMin
			}

			results, err := engine(cfg).HighBalanceAccounts(decimal.NewFromFloat(min))
			if err != nil {
				return err
			}
			return printJSON(cmd, results)
		},
	}

	cmd.Flags().Float64Var(&min, "min", 100000, "minimum balance")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
