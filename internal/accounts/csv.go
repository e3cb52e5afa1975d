package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/teller-dev/teller/internal/model"
)

// Header is the CSV header for accounts.csv.
const Header = "account_id,customer_id,account_type,account_number,currency,balance,status,interest_rate,opened_date,closed_date"

const (
	numFields   = 10
	colID       = 0
	colCustomer = 1
	colType     = 2
	colNumber   = 3
	colCurrency = 4
	colBalance  = 5
	colStatus   = 6
	colRate     = 7
	colOpened   = 8
	colClosed   = 9
)

// ReadAccounts reads all accounts from an accounts.csv reader.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var accts []model.Account
	for i, rec := range records[1:] {
		a, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accts = append(accts, a)
	}
	return accts, nil
}

// WriteAccounts writes accounts to an accounts.csv writer (including header).
func WriteAccounts(w io.Writer, accts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range accts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row. Balance and interest
// rate are carried as the stored text, never reformatted.
func MarshalAccount(a model.Account) []string {
	row := make([]string, numFields)
	row[colID] = a.ID
	row[colCustomer] = a.CustomerID
	row[colType] = string(a.Type)
	row[colNumber] = a.Number
	row[colCurrency] = a.Currency
	row[colBalance] = a.Balance
	row[colStatus] = string(a.Status)
	row[colRate] = a.InterestRate
	row[colOpened] = a.OpenedDate
	row[colClosed] = a.ClosedDate
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	return model.Account{
		ID:           record[colID],
		CustomerID:   record[colCustomer],
		Type:         model.AccountType(record[colType]),
		Number:       record[colNumber],
		Currency:     record[colCurrency],
		Balance:      record[colBalance],
		Status:       model.AccountStatus(record[colStatus]),
		InterestRate: record[colRate],
		OpenedDate:   record[colOpened],
		ClosedDate:   record[colClosed],
	}, nil
}
