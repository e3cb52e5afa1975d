package analytics

import "github.com/teller-dev/teller/internal/model"

// IndexByAccount groups ledger entries by account ID in a single pass,
// preserving file order within each bucket. Queries build this once per
// invocation instead of rescanning the full ledger per account.
func IndexByAccount(txns []model.Transaction) map[string][]model.Transaction {
	index := make(map[string][]model.Transaction)
	for _, tx := range txns {
		index[tx.AccountID] = append(index[tx.AccountID], tx)
	}
	return index
}
