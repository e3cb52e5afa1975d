package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/teller-dev/teller/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "transaction_id,account_id,transaction_type,amount,description,balance_after,timestamp,reference_id,status"

const (
	numFields  = 9
	colID      = 0
	colAccount = 1
	colType    = 2
	colAmount  = 3
	colDesc    = 4
	colBalance = 5
	colStamp   = 6
	colRef     = 7
	colStatus  = 8
)

// ReadTransactions reads all ledger entries from a ledger.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, tx)
	}
	return txns, nil
}

// WriteTransactions writes ledger entries to a ledger.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txns {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row. Amount and
// balance snapshot are carried as the stored text, never reformatted.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colAccount] = tx.AccountID
	row[colType] = string(tx.Type)
	row[colAmount] = tx.Amount
	row[colDesc] = tx.Description
	row[colBalance] = tx.BalanceAfter
	row[colStamp] = tx.Timestamp
	row[colRef] = tx.ReferenceID
	row[colStatus] = tx.Status
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	return model.Transaction{
		ID:           record[colID],
		AccountID:    record[colAccount],
		Type:         model.TransactionType(record[colType]),
		Amount:       record[colAmount],
		Description:  record[colDesc],
		BalanceAfter: record[colBalance],
		Timestamp:    record[colStamp],
		ReferenceID:  record[colRef],
		Status:       record[colStatus],
	}, nil
}
