package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/customers"
	"github.com/teller-dev/teller/internal/ledger"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	counts, err := Generate(dir, Params{Customers: 20, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, 20, counts.Customers)
	assert.Greater(t, counts.Accounts, 0)

	custs, err := customers.NewService(dir).All()
	require.NoError(t, err)
	require.Len(t, custs, 20)
	assert.Equal(t, "C0001", custs[0].ID)
	assert.Equal(t, "C0020", custs[19].ID)

	accts, err := accounts.NewService(dir).All()
	require.NoError(t, err)
	require.Len(t, accts, counts.Accounts)

	custIDs := make(map[string]bool, len(custs))
	for _, c := range custs {
		custIDs[c.ID] = true
	}
	for _, a := range accts {
		assert.True(t, custIDs[a.CustomerID], "account %s references unknown customer %s", a.ID, a.CustomerID)
		_, err := a.BalanceAmount()
		assert.NoError(t, err, "balance of %s must parse", a.ID)
	}

	acctIDs := make(map[string]bool, len(accts))
	for _, a := range accts {
		require.False(t, acctIDs[a.ID], "duplicate account ID %s", a.ID)
		acctIDs[a.ID] = true
	}

	txns, err := ledger.NewService(dir).All()
	require.NoError(t, err)
	require.Len(t, txns, counts.Transactions)
	for _, tx := range txns {
		assert.True(t, acctIDs[tx.AccountID], "transaction %s references unknown account %s", tx.ID, tx.AccountID)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()

	a, err := Generate(dirA, Params{Customers: 10, Seed: 42})
	require.NoError(t, err)
	b, err := Generate(dirB, Params{Customers: 10, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	custsA, err := customers.NewService(dirA).All()
	require.NoError(t, err)
	custsB, err := customers.NewService(dirB).All()
	require.NoError(t, err)
	require.Len(t, custsB, len(custsA))
	for i := range custsA {
		// CreatedDate spans up to the wall clock, so it differs
		// between the two runs. Everything else must match.
		custsA[i].CreatedDate = ""
		custsB[i].CreatedDate = ""
		assert.Equal(t, custsA[i], custsB[i])
	}
}

func TestGenerateReplacesExisting(t *testing.T) {
	dir := t.TempDir()

	_, err := Generate(dir, Params{Customers: 30, Seed: 1})
	require.NoError(t, err)
	counts, err := Generate(dir, Params{Customers: 5, Seed: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, counts.Customers)

	custs, err := customers.NewService(dir).All()
	require.NoError(t, err)
	assert.Len(t, custs, 5)
}

func TestGenerateDefaultCount(t *testing.T) {
	dir := t.TempDir()

	counts, err := Generate(dir, Params{Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 120, counts.Customers)
}
