package statement

import (
	"fmt"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/id"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
)

// Import appends parsed statement rows to the target account's ledger
// and moves the account balance by the net of the rows. Negative
// amounts become DEBIT entries, everything else CREDIT. Returns the
// number of entries written.
//
// The account must exist and its stored balance must parse: imports
// adjust a balance, so a malformed one is an error, not a zero.
func Import(accts *accounts.Service, led *ledger.Service, accountID string, txns []Transaction) (int, error) {
	balance, ok, err := accts.Balance(accountID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("account %s not found", accountID)
	}

	existing, err := led.All()
	if err != nil {
		return 0, err
	}
	seq := nextSeq(existing)

	for _, txn := range txns {
		txType := model.TransactionCredit
		amount := txn.Amount
		if amount.IsNegative() {
			txType = model.TransactionDebit
			amount = amount.Abs()
		}
		balance = balance.Add(txn.Amount)

		added, err := led.Add(ledger.AddParams{
			ID:           id.FormatTransactionID(seq),
			AccountID:    accountID,
			Type:         txType,
			Amount:       amount,
			Description:  txn.Description,
			BalanceAfter: balance,
			ReferenceID:  txn.Reference,
			Timestamp:    model.FormatTimestamp(txn.Date),
		})
		if err != nil {
			return 0, fmt.Errorf("recording %s: %w", txn.Reference, err)
		}
		if !added {
			return 0, fmt.Errorf("recording %s: rejected", txn.Reference)
		}
		seq++
	}

	if len(txns) > 0 {
		if _, err := accts.UpdateBalance(accountID, balance); err != nil {
			return 0, fmt.Errorf("updating balance of %s: %w", accountID, err)
		}
	}
	return len(txns), nil
}

// nextSeq returns one past the highest numeric transaction ID. Entries
// whose IDs do not follow the T-prefix format are skipped.
func nextSeq(txns []model.Transaction) int {
	max := 0
	for _, tx := range txns {
		seq, err := id.ParseSeq(tx.ID)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max + 1
}
