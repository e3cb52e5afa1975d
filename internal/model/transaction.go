package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a ledger entry. Amounts are
// unsigned magnitudes; direction is conveyed by the type, not the sign.
type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// TransactionCompleted is the default status for new ledger entries.
const TransactionCompleted = "COMPLETED"

// Transaction represents a row in ledger.csv. The ledger is append-only:
// rows are written once and never mutated.
type Transaction struct {
	ID           string
	AccountID    string
	Type         TransactionType
	Amount       string
	Description  string
	BalanceAfter string // snapshot at write time, display-only
	Timestamp    string // UTC ISO-8601 timestamp
	ReferenceID  string
	Status       string
}

// AmountValue parses the stored amount. Malformed text is an error for
// this direct accessor; batch queries use tolerant parsing instead.
func (t Transaction) AmountValue() (decimal.Decimal, error) {
	return decimal.NewFromString(t.Amount)
}

// FormatTimestamp renders a time the way the store persists timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
