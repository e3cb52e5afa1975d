package customers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/teller-dev/teller/internal/model"
)

// Header is the CSV header for customers.csv.
const Header = "customer_id,first_name,last_name,email,phone,address,date_of_birth,created_date,status"

const (
	numFields  = 9
	colID      = 0
	colFirst   = 1
	colLast    = 2
	colEmail   = 3
	colPhone   = 4
	colAddress = 5
	colDOB     = 6
	colCreated = 7
	colStatus  = 8
)

// ReadCustomers reads all customers from a customers.csv reader.
func ReadCustomers(r io.Reader) ([]model.Customer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading customers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var custs []model.Customer
	for i, rec := range records[1:] {
		c, err := UnmarshalCustomer(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		custs = append(custs, c)
	}
	return custs, nil
}

// WriteCustomers writes customers to a customers.csv writer (including header).
func WriteCustomers(w io.Writer, custs []model.Customer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range custs {
		if err := cw.Write(MarshalCustomer(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCustomer converts a Customer to a CSV row.
func MarshalCustomer(c model.Customer) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colFirst] = c.FirstName
	row[colLast] = c.LastName
	row[colEmail] = c.Email
	row[colPhone] = c.Phone
	row[colAddress] = c.Address
	row[colDOB] = c.DateOfBirth
	row[colCreated] = c.CreatedDate
	row[colStatus] = string(c.Status)
	return row
}

// UnmarshalCustomer converts a CSV row to a Customer.
func UnmarshalCustomer(record []string) (model.Customer, error) {
	if len(record) != numFields {
		return model.Customer{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	return model.Customer{
		ID:          record[colID],
		FirstName:   record[colFirst],
		LastName:    record[colLast],
		Email:       record[colEmail],
		Phone:       record[colPhone],
		Address:     record[colAddress],
		DateOfBirth: record[colDOB],
		CreatedDate: record[colCreated],
		Status:      model.CustomerStatus(record[colStatus]),
	}, nil
}
