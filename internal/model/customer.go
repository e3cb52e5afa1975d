package model

// CustomerStatus represents the lifecycle state of a customer.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "ACTIVE"
	CustomerInactive CustomerStatus = "INACTIVE"
	CustomerClosed   CustomerStatus = "CLOSED"
)

// Customer represents a row in customers.csv.
type Customer struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	DateOfBirth string // ISO date, stored verbatim
	CreatedDate string // UTC ISO-8601 timestamp
	Status      CustomerStatus
}
