package model

import "github.com/shopspring/decimal"

// AccountType classifies accounts.
type AccountType string

const (
	AccountChecking    AccountType = "CHECKING"
	AccountSavings     AccountType = "SAVINGS"
	AccountMoneyMarket AccountType = "MONEY_MARKET"
)

// AccountStatus represents the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
	AccountClosed AccountStatus = "CLOSED"
)

// Account represents a row in accounts.csv.
//
// Balance is the authoritative current value and is kept as the text
// written to the file; it is never derived from the ledger. Consumers
// that need a number parse it on demand (BalanceAmount for strict
// access, analytics tolerate malformed text by treating it as zero).
type Account struct {
	ID           string
	CustomerID   string
	Type         AccountType
	Number       string
	Currency     string
	Balance      string
	Status       AccountStatus
	InterestRate string
	OpenedDate   string // UTC ISO-8601 timestamp
	ClosedDate   string // empty while the account is open
}

// BalanceAmount parses the stored balance. Malformed text is an error
// for this direct accessor; batch queries use tolerant parsing instead.
func (a Account) BalanceAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(a.Balance)
}

// InterestRateValue parses the stored interest rate.
func (a Account) InterestRateValue() (decimal.Decimal, error) {
	return decimal.NewFromString(a.InterestRate)
}
