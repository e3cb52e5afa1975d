package accounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/model"
)

// FileName is the accounts table file under the data root.
const FileName = "accounts.csv"

// Service provides account operations over accounts.csv.
//
// Mutations rewrite the whole table (read-all, edit, write-all). The
// mutex serializes mutating calls within this process; readers do not
// lock and are safe alongside each other.
type Service struct {
	dataDir string
	mu      sync.Mutex
	now     func() time.Time
}

// NewService creates an account Service rooted at dataDir.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir, now: time.Now}
}

// SetClock overrides the timestamp source. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// All returns every account in file order. A missing backing file is
// an empty table, not an error.
func (s *Service) All() ([]model.Account, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FileName, err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return accts, nil
}

// Get returns the first account with the given ID.
func (s *Service) Get(accountID string) (model.Account, bool, error) {
	accts, err := s.All()
	if err != nil {
		return model.Account{}, false, err
	}
	for _, a := range accts {
		if a.ID == accountID {
			return a, true, nil
		}
	}
	return model.Account{}, false, nil
}

// ByCustomer returns all accounts owned by a customer, in file order.
func (s *Service) ByCustomer(customerID string) ([]model.Account, error) {
	accts, err := s.All()
	if err != nil {
		return nil, err
	}
	var owned []model.Account
	for _, a := range accts {
		if a.CustomerID == customerID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

// Balance returns the parsed current balance of one account. Malformed
// balance text is a hard failure here, unlike the batch queries.
func (s *Service) Balance(accountID string) (decimal.Decimal, bool, error) {
	a, ok, err := s.Get(accountID)
	if err != nil || !ok {
		return decimal.Zero, ok, err
	}
	bal, err := a.BalanceAmount()
	if err != nil {
		return decimal.Zero, true, fmt.Errorf("account %s: parsing balance %q: %w", accountID, a.Balance, err)
	}
	return bal, true, nil
}

// AddParams holds the fields for a new account. Status defaults to
// ACTIVE, InterestRate to "0.0"; OpenedDate defaults to the current
// UTC time.
type AddParams struct {
	ID           string
	CustomerID   string
	Type         model.AccountType
	Number       string
	Currency     string
	Balance      decimal.Decimal
	InterestRate string
	Status       model.AccountStatus
}

// Add appends a new account and rewrites the table. Returns false
// without mutating anything when the ID already exists.
func (s *Service) Add(params AddParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accts, err := s.All()
	if err != nil {
		return false, err
	}
	for _, a := range accts {
		if a.ID == params.ID {
			return false, nil
		}
	}

	status := params.Status
	if status == "" {
		status = model.AccountActive
	}
	rate := params.InterestRate
	if rate == "" {
		rate = "0.0"
	}

	accts = append(accts, model.Account{
		ID:           params.ID,
		CustomerID:   params.CustomerID,
		Type:         params.Type,
		Number:       params.Number,
		Currency:     params.Currency,
		Balance:      params.Balance.StringFixed(2),
		Status:       status,
		InterestRate: rate,
		OpenedDate:   model.FormatTimestamp(s.now()),
		ClosedDate:   "",
	})

	if err := s.writeAll(accts); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateBalance sets the balance of one account and rewrites the table.
// Returns false when no row matches; nothing is written in that case.
func (s *Service) UpdateBalance(accountID string, newBalance decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accts, err := s.All()
	if err != nil {
		return false, err
	}
	for i := range accts {
		if accts[i].ID == accountID {
			accts[i].Balance = newBalance.StringFixed(2)
			if err := s.writeAll(accts); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus sets the status of one account and rewrites the table.
func (s *Service) UpdateStatus(accountID string, status model.AccountStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accts, err := s.All()
	if err != nil {
		return false, err
	}
	for i := range accts {
		if accts[i].ID == accountID {
			accts[i].Status = status
			if err := s.writeAll(accts); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) writeAll(accts []model.Account) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating %s: %w", FileName, err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accts); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

func (s *Service) path() string {
	return filepath.Join(s.dataDir, FileName)
}
