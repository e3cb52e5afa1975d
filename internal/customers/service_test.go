package customers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/model"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	return func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func TestAll_MissingFile(t *testing.T) {
	svc := NewService(t.TempDir())

	custs, err := svc.All()
	require.NoError(t, err)
	assert.Empty(t, custs)
}

func TestAdd(t *testing.T) {
	svc := NewService(t.TempDir())
	svc.SetClock(fixedClock(t))

	ok, err := svc.Add(AddParams{
		ID:          "C0001",
		FirstName:   "Alice",
		LastName:    "Nguyen",
		Email:       "alice@example.com",
		DateOfBirth: "1985-04-12",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := svc.Get("C0001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Alice", got.FirstName)
	assert.Equal(t, model.CustomerActive, got.Status, "status defaults to ACTIVE")
	assert.Equal(t, "2025-06-01T12:00:00Z", got.CreatedDate)
}

func TestAdd_DuplicateLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)
	svc.SetClock(fixedClock(t))

	ok, err := svc.Add(AddParams{ID: "C0001", FirstName: "Alice"})
	require.NoError(t, err)
	require.True(t, ok)

	before, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	ok, err = svc.Add(AddParams{ID: "C0001", FirstName: "Impostor"})
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, before, after, "duplicate add must not rewrite the table")
}

func TestAll_IdempotentRead(t *testing.T) {
	svc := NewService(t.TempDir())
	svc.SetClock(fixedClock(t))

	for i, id := range []string{"C0001", "C0002", "C0003"} {
		ok, err := svc.Add(AddParams{ID: id, FirstName: "F", LastName: "L"})
		require.NoError(t, err, "add %d", i)
		require.True(t, ok)
	}

	first, err := svc.All()
	require.NoError(t, err)
	second, err := svc.All()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(t.TempDir())
	svc.SetClock(fixedClock(t))

	ok, err := svc.Add(AddParams{ID: "C0001", FirstName: "Alice"})
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.Add(AddParams{ID: "C0002", FirstName: "Bob"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.UpdateStatus("C0001", model.CustomerInactive)
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := svc.Get("C0001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.CustomerInactive, got.Status)

	// The other row is untouched.
	other, found, err := svc.Get("C0002")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.CustomerActive, other.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir)

	ok, err := svc.UpdateStatus("C9999", model.CustomerClosed)
	require.NoError(t, err)
	assert.False(t, ok)

	// No file is created for a no-op update.
	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(t.TempDir())

	_, found, err := svc.Get("C0001")
	require.NoError(t, err)
	assert.False(t, found)
}
