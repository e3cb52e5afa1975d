package customers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/teller-dev/teller/internal/model"
)

// FileName is the customers table file under the data root.
const FileName = "customers.csv"

// Service provides customer operations over customers.csv.
//
// Every mutating call reads the whole table, edits it in memory, and
// rewrites the file. The mutex serializes mutations within this process;
// a second process writing the same file can still lose updates (last
// writer wins on the whole table).
type Service struct {
	dataDir string
	mu      sync.Mutex
	now     func() time.Time
}

// NewService creates a customer Service rooted at dataDir.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir, now: time.Now}
}

// SetClock overrides the timestamp source. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// All returns every customer in file order. A missing backing file is
// an empty table, not an error.
func (s *Service) All() ([]model.Customer, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FileName, err)
	}
	defer f.Close()

	custs, err := ReadCustomers(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return custs, nil
}

// Get returns the first customer with the given ID.
func (s *Service) Get(customerID string) (model.Customer, bool, error) {
	custs, err := s.All()
	if err != nil {
		return model.Customer{}, false, err
	}
	for _, c := range custs {
		if c.ID == customerID {
			return c, true, nil
		}
	}
	return model.Customer{}, false, nil
}

// AddParams holds the fields for a new customer. Status defaults to
// ACTIVE; CreatedDate defaults to the current UTC time.
type AddParams struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	DateOfBirth string
	Status      model.CustomerStatus
}

// Add appends a new customer and rewrites the table. Returns false
// without mutating anything when the ID already exists.
func (s *Service) Add(params AddParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	custs, err := s.All()
	if err != nil {
		return false, err
	}
	for _, c := range custs {
		if c.ID == params.ID {
			return false, nil
		}
	}

	status := params.Status
	if status == "" {
		status = model.CustomerActive
	}

	custs = append(custs, model.Customer{
		ID:          params.ID,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Phone:       params.Phone,
		Address:     params.Address,
		DateOfBirth: params.DateOfBirth,
		CreatedDate: model.FormatTimestamp(s.now()),
		Status:      status,
	})

	if err := s.writeAll(custs); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateStatus sets the status of one customer and rewrites the table.
// Returns false when no row matches; nothing is written in that case.
func (s *Service) UpdateStatus(customerID string, status model.CustomerStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	custs, err := s.All()
	if err != nil {
		return false, err
	}
	for i := range custs {
		if custs[i].ID == customerID {
			custs[i].Status = status
			if err := s.writeAll(custs); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) writeAll(custs []model.Customer) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating %s: %w", FileName, err)
	}
	defer f.Close()

	if err := WriteCustomers(f, custs); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

func (s *Service) path() string {
	return filepath.Join(s.dataDir, FileName)
}
