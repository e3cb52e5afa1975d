package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/analytics"
	"github.com/teller-dev/teller/internal/customers"
	"github.com/teller-dev/teller/internal/id"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newStores(t *testing.T) (string, *customers.Service, *accounts.Service, *ledger.Service) {
	t.Helper()
	dir := t.TempDir()
	return dir, customers.NewService(dir), accounts.NewService(dir), ledger.NewService(dir)
}

func TestCustomerSummary(t *testing.T) {
	_, cust, accts, led := newStores(t)
	svc := NewService(cust, accts, led)

	added, err := cust.Add(customers.AddParams{ID: "C0001", FirstName: "Ada", LastName: "Byrne"})
	require.NoError(t, err)
	require.True(t, added)

	for i, bal := range []string{"1000.00", "2500.50"} {
		added, err := accts.Add(accounts.AddParams{
			ID:         id.FormatAccountID(i + 1),
			CustomerID: "C0001",
			Type:       model.AccountChecking,
			Balance:    dec(bal),
		})
		require.NoError(t, err)
		require.True(t, added)
	}

	sum, ok, err := svc.Customer("C0001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", sum.Customer.FirstName)
	assert.Equal(t, 2, sum.AccountCount)
	assert.True(t, sum.TotalBalance.Equal(dec("3500.50")))
}

func TestCustomerSummary_MalformedBalanceSkipped(t *testing.T) {
	dir, cust, accts, led := newStores(t)
	svc := NewService(cust, accts, led)

	_, err := cust.Add(customers.AddParams{ID: "C0001", FirstName: "Ada"})
	require.NoError(t, err)

	writeAccounts(t, dir, []model.Account{
		{ID: "A00001", CustomerID: "C0001", Balance: "garbage", Status: model.AccountActive},
		{ID: "A00002", CustomerID: "C0001", Balance: "750.00", Status: model.AccountActive},
	})

	sum, ok, err := svc.Customer("C0001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, sum.AccountCount, "malformed row still counted")
	assert.True(t, sum.TotalBalance.Equal(dec("750.00")), "malformed balance contributes zero")
}

func TestCustomerSummary_NotFound(t *testing.T) {
	_, cust, accts, led := newStores(t)
	svc := NewService(cust, accts, led)

	_, ok, err := svc.Customer("C9999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountSummary(t *testing.T) {
	_, cust, accts, led := newStores(t)
	svc := NewService(cust, accts, led)

	_, err := accts.Add(accounts.AddParams{
		ID:         "A00001",
		CustomerID: "C0001",
		Type:       model.AccountSavings,
		Balance:    dec("5000.00"),
	})
	require.NoError(t, err)

	for _, id := range []string{"T0000001", "T0000002", "T0000003"} {
		_, err := led.Add(ledger.AddParams{
			ID:        id,
			AccountID: "A00001",
			Type:      model.TransactionCredit,
			Amount:    dec("100.00"),
		})
		require.NoError(t, err)
	}

	sum, ok, err := svc.Account("A00001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, sum.TransactionCount)
	assert.Len(t, sum.Transactions, 3)
	assert.True(t, sum.CurrentBalance.Equal(dec("5000.00")))
}

func TestAccountSummary_MalformedBalanceErrors(t *testing.T) {
	dir, cust, accts, led := newStores(t)
	svc := NewService(cust, accts, led)

	writeAccounts(t, dir, []model.Account{
		{ID: "A00001", CustomerID: "C0001", Balance: "NaN-ish", Status: model.AccountActive},
	})

	_, ok, err := svc.Account("A00001")
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestWriteDormantReport(t *testing.T) {
	dir := t.TempDir()
	last := time.Date(2024, 11, 3, 9, 30, 0, 0, time.UTC)

	rows := []analytics.DormantLargeAccount{
		{
			DormantAccount: analytics.DormantAccount{
				AccountID:       "A00001",
				CustomerID:      "C0001",
				AccountNumber:   "ACC-1001",
				Balance:         dec("12000.00"),
				Status:          model.AccountActive,
				LastTransaction: &last,
				DaysInactive:    210,
			},
			LargestAmount: dec("2500.00"),
		},
		{
			DormantAccount: analytics.DormantAccount{
				AccountID:  "A00002",
				CustomerID: "C0002",
				Balance:    dec("99.50"),
				Status:     model.AccountFrozen,
			},
			LargestAmount: dec("1000.00"),
		},
	}
	require.NoError(t, WriteDormantReport(dir, rows))

	data, err := os.ReadFile(filepath.Join(dir, DormantReportFile))
	require.NoError(t, err)
	want := "account_id,customer_id,account_number,last_transaction_date,days_inactive,largest_transaction_amount,account_status,current_balance\n" +
		"A00001,C0001,ACC-1001,2024-11-03T09:30:00Z,210,2500.00,ACTIVE,12000\n" +
		"A00002,C0002,,,0,1000.00,FROZEN,99.5\n"
	assert.Equal(t, want, string(data))
}

func TestWriteDormantReport_EmptyRemovesStale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DormantReportFile)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteDormantReport(dir, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A second empty write with no file present is a no-op.
	require.NoError(t, WriteDormantReport(dir, nil))
}

func writeAccounts(t *testing.T, dir string, accts []model.Account) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, accounts.FileName))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, accounts.WriteAccounts(f, accts))
}
