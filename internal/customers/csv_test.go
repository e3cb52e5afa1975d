package customers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/model"
)

func TestRoundTrip(t *testing.T) {
	custs := []model.Customer{
		{
			ID:          "C0001",
			FirstName:   "Alice",
			LastName:    "Nguyen",
			Email:       "alice.nguyen1@example.com",
			Phone:       "555-1234",
			Address:     "12 Main St New York NY 10001",
			DateOfBirth: "1985-04-12",
			CreatedDate: "2023-01-15T10:30:00Z",
			Status:      model.CustomerActive,
		},
		{
			ID:        "C0002",
			FirstName: "Bob",
			LastName:  "Okafor",
			Email:     "bob.okafor2@example.com",
			Status:    model.CustomerClosed,
		},
	}

	var buf bytes.Buffer
	err := WriteCustomers(&buf, custs)
	require.NoError(t, err)

	got, err := ReadCustomers(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, custs[0], got[0])
	assert.Equal(t, custs[1], got[1])
}

func TestReadEmptyInput(t *testing.T) {
	got, err := ReadCustomers(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalFieldCount(t *testing.T) {
	_, err := UnmarshalCustomer([]string{"C0001", "Alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 9 fields")
}

func TestHeaderMatchesColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCustomers(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", buf.String())
}
