package accounts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(dir)
	svc.SetClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return svc, dir
}

func TestAdd_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	ok, err := svc.Add(AddParams{
		ID:         "A00001",
		CustomerID: "C0001",
		Type:       model.AccountChecking,
		Number:     "1000000001",
		Currency:   "USD",
		Balance:    dec("2500.50"),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := svc.Get("A00001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2500.50", got.Balance)
	assert.Equal(t, model.AccountActive, got.Status, "status defaults to ACTIVE")
	assert.Equal(t, "0.0", got.InterestRate, "interest rate defaults to 0.0")
	assert.Equal(t, "2025-06-01T12:00:00Z", got.OpenedDate)
	assert.Empty(t, got.ClosedDate)
}

func TestAdd_DuplicateLeavesFileUntouched(t *testing.T) {
	svc, dir := newTestService(t)

	ok, err := svc.Add(AddParams{ID: "A00001", CustomerID: "C0001", Balance: dec("100")})
	require.NoError(t, err)
	require.True(t, ok)

	before, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	ok, err = svc.Add(AddParams{ID: "A00001", CustomerID: "C0002", Balance: dec("999")})
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, before, after, "duplicate add must not rewrite the table")
}

func TestUpdateBalance_Isolation(t *testing.T) {
	svc, _ := newTestService(t)

	for _, p := range []AddParams{
		{ID: "A00001", CustomerID: "C0001", Type: model.AccountChecking, Number: "1", Currency: "USD", Balance: dec("100.00")},
		{ID: "A00002", CustomerID: "C0001", Type: model.AccountSavings, Number: "2", Currency: "USD", Balance: dec("200.00"), InterestRate: "1.25"},
		{ID: "A00003", CustomerID: "C0002", Type: model.AccountMoneyMarket, Number: "3", Currency: "USD", Balance: dec("300.00")},
	} {
		ok, err := svc.Add(p)
		require.NoError(t, err)
		require.True(t, ok)
	}

	before, err := svc.All()
	require.NoError(t, err)

	ok, err := svc.UpdateBalance("A00002", dec("250.75"))
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := svc.All()
	require.NoError(t, err)
	require.Len(t, after, 3)

	// Only the targeted row's balance changed.
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, "250.75", after[1].Balance)

	changed := after[1]
	changed.Balance = before[1].Balance
	assert.Equal(t, before[1], changed, "no other field of the updated row changed")
}

func TestUpdateBalance_NotFound(t *testing.T) {
	svc, dir := newTestService(t)

	ok, err := svc.UpdateBalance("A09999", dec("1.00"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(err), "no partial write for a missing row")
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService(t)

	ok, err := svc.Add(AddParams{ID: "A00001", CustomerID: "C0001", Balance: dec("100")})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.UpdateStatus("A00001", model.AccountFrozen)
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := svc.Get("A00001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.AccountFrozen, got.Status)
}

func TestByCustomer(t *testing.T) {
	svc, _ := newTestService(t)

	for _, p := range []AddParams{
		{ID: "A00001", CustomerID: "C0001", Balance: dec("1")},
		{ID: "A00002", CustomerID: "C0002", Balance: dec("2")},
		{ID: "A00003", CustomerID: "C0001", Balance: dec("3")},
	} {
		ok, err := svc.Add(p)
		require.NoError(t, err)
		require.True(t, ok)
	}

	owned, err := svc.ByCustomer("C0001")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "A00001", owned[0].ID)
	assert.Equal(t, "A00003", owned[1].ID, "file order preserved")
}

func TestBalance_Malformed(t *testing.T) {
	svc, dir := newTestService(t)

	// Write a row with malformed balance text directly.
	f, err := os.Create(filepath.Join(dir, FileName))
	require.NoError(t, err)
	err = WriteAccounts(f, []model.Account{
		{ID: "A00001", CustomerID: "C0001", Balance: "not-a-number", Status: model.AccountActive},
	})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// The direct accessor propagates the parse failure.
	_, found, err := svc.Balance("A00001")
	assert.True(t, found)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing balance")
}

func TestBalance(t *testing.T) {
	svc, _ := newTestService(t)

	ok, err := svc.Add(AddParams{ID: "A00001", CustomerID: "C0001", Balance: dec("10000.00")})
	require.NoError(t, err)
	require.True(t, ok)

	bal, found, err := svc.Balance("A00001")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, bal.Equal(dec("10000.00")))
}
