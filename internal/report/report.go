package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/analytics"
	"github.com/teller-dev/teller/internal/customers"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
)

// Service builds summaries over the entity stores.
type Service struct {
	customers *customers.Service
	accounts  *accounts.Service
	ledger    *ledger.Service
}

// NewService creates a report Service over the given stores.
func NewService(cust *customers.Service, accts *accounts.Service, led *ledger.Service) *Service {
	return &Service{customers: cust, accounts: accts, ledger: led}
}

// CustomerSummary aggregates a customer with their accounts. Malformed
// balances count as zero in the total.
type CustomerSummary struct {
	Customer     model.Customer
	Accounts     []model.Account
	TotalBalance decimal.Decimal
	AccountCount int
}

// AccountSummary aggregates an account with its ledger entries.
type AccountSummary struct {
	Account          model.Account
	Transactions     []model.Transaction
	TransactionCount int
	CurrentBalance   decimal.Decimal
}

// Customer returns the summary for one customer; false when absent.
func (s *Service) Customer(customerID string) (CustomerSummary, bool, error) {
	cust, ok, err := s.customers.Get(customerID)
	if err != nil || !ok {
		return CustomerSummary{}, ok, err
	}

	accts, err := s.accounts.ByCustomer(customerID)
	if err != nil {
		return CustomerSummary{}, true, err
	}

	total := decimal.Zero
	for _, a := range accts {
		bal, err := a.BalanceAmount()
		if err != nil {
			continue
		}
		total = total.Add(bal)
	}

	return CustomerSummary{
		Customer:     cust,
		Accounts:     accts,
		TotalBalance: total,
		AccountCount: len(accts),
	}, true, nil
}

// Account returns the summary for one account; false when absent.
// The current balance parses strictly: this is a direct accessor, not
// a batch query.
func (s *Service) Account(accountID string) (AccountSummary, bool, error) {
	acc, ok, err := s.accounts.Get(accountID)
	if err != nil || !ok {
		return AccountSummary{}, ok, err
	}

	txns, err := s.ledger.ByAccount(accountID, 0)
	if err != nil {
		return AccountSummary{}, true, err
	}

	bal, err := acc.BalanceAmount()
	if err != nil {
		return AccountSummary{}, true, fmt.Errorf("account %s: parsing balance %q: %w", accountID, acc.Balance, err)
	}

	return AccountSummary{
		Account:          acc,
		Transactions:     txns,
		TransactionCount: len(txns),
		CurrentBalance:   bal,
	}, true, nil
}

// DormantReportFile is the CSV report written under the data root.
const DormantReportFile = "dormant_accounts_report.csv"

var dormantReportHeader = []string{
	"account_id", "customer_id", "account_number", "last_transaction_date",
	"days_inactive", "largest_transaction_amount", "account_status", "current_balance",
}

// WriteDormantReport writes the dormant-with-large-history rows to a
// CSV report under dataDir. With zero rows any stale report file is
// removed instead.
func WriteDormantReport(dataDir string, rows []analytics.DormantLargeAccount) error {
	path := filepath.Join(dataDir, DormantReportFile)

	if len(rows) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale report: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(dormantReportHeader); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for i, row := range rows {
		lastTx := ""
		if row.LastTransaction != nil {
			lastTx = model.FormatTimestamp(*row.LastTransaction)
		}
		rec := []string{
			row.AccountID,
			row.CustomerID,
			row.AccountNumber,
			lastTx,
			fmt.Sprintf("%d", row.DaysInactive),
			row.LargestAmount.StringFixed(2),
			string(row.Status),
			row.Balance.String(),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing report row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
