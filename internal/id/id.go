package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FormatCustomerID returns a customer ID like "C0001".
func FormatCustomerID(seq int) string {
	return fmt.Sprintf("C%04d", seq)
}

// FormatAccountID returns an account ID like "A00001".
func FormatAccountID(seq int) string {
	return fmt.Sprintf("A%05d", seq)
}

// FormatTransactionID returns a transaction ID like "T0000001".
func FormatTransactionID(seq int) string {
	return fmt.Sprintf("T%07d", seq)
}

// NewReferenceID returns a random reference identifier for a ledger
// entry. Uniqueness is the caller's concern; the store never checks.
func NewReferenceID() string {
	return uuid.NewString()
}

// ParseSeq extracts the numeric sequence from a formatted ID.
// "A00042" -> 42.
func ParseSeq(formatted string) (int, error) {
	if len(formatted) < 2 {
		return 0, fmt.Errorf("invalid ID format: %q", formatted)
	}
	digits := strings.TrimLeft(formatted[1:], "0")
	if digits == "" {
		digits = "0"
	}
	seq, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence in ID %q: %w", formatted, err)
	}
	return seq, nil
}
