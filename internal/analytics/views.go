package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/model"
)

// DormantAccount is one row of a dormancy query result.
//
// LastTransaction is nil for an account with no ledger entries at all;
// such accounts are still reported as dormant and DaysInactive is
// meaningless for them.
type DormantAccount struct {
	AccountID       string
	CustomerID      string
	AccountNumber   string
	Balance         decimal.Decimal
	Status          model.AccountStatus
	LastTransaction *time.Time
	DaysInactive    int
}

// DormantLargeAccount is a dormant account that also has at least one
// historical transaction at or above the query threshold.
type DormantLargeAccount struct {
	DormantAccount
	LargestAmount decimal.Decimal
}

// SalaryTransaction is one qualifying deposit on a salary account.
type SalaryTransaction struct {
	TransactionID string
	Amount        decimal.Decimal
	Timestamp     string
	Description   string
}

// SalaryAccount is one row of the salary-deposit query result.
type SalaryAccount struct {
	AccountID     string
	CustomerID    string
	AccountNumber string
	Balance       decimal.Decimal
	Status        model.AccountStatus
	DepositCount  int
	MaxDeposit    decimal.Decimal
	Recent        []SalaryTransaction // last 3 qualifying, in ledger order
}

// HighBalanceAccount is one row of the high-balance query result.
type HighBalanceAccount struct {
	AccountID     string
	CustomerID    string
	AccountNumber string
	AccountType   model.AccountType
	Balance       decimal.Decimal
	Status        model.AccountStatus
	InterestRate  decimal.Decimal
}
