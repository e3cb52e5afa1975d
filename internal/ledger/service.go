package ledger

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

// FileName is the ledger table file under the data root.
const FileName = "ledger.csv"

// Service provides ledger operations over ledger.csv. The ledger is
// append-only: entries are never mutated or deleted once written.
//
// Add still rewrites the whole table (read-all, append, write-all) so
// the persistence behavior matches the other entity tables. The mutex
// serializes writers within this process.
type Service struct {
	dataDir string
	mu      sync.Mutex
	now     func() time.Time
}

// NewService creates a ledger Service rooted at dataDir.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir, now: time.Now}
}

// SetClock overrides the timestamp source. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// All returns every ledger entry in file order. A missing backing file
// is an empty table, not an error.
func (s *Service) All() ([]model.Transaction, error) {
	f, err := os.Open(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FileName, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	return txns, nil
}

// Get returns the first ledger entry with the given ID.
func (s *Service) Get(transactionID string) (model.Transaction, bool, error) {
	txns, err := s.All()
	if err != nil {
		return model.Transaction{}, false, err
	}
	for _, tx := range txns {
		if tx.ID == transactionID {
			return tx, true, nil
		}
	}
	return model.Transaction{}, false, nil
}

// ByAccount returns an account's ledger entries in file order. A limit
// above zero keeps only the most recent entries by position.
func (s *Service) ByAccount(accountID string, limit int) ([]model.Transaction, error) {
	txns, err := s.All()
	if err != nil {
		return nil, err
	}
	var owned []model.Transaction
	for _, tx := range txns {
		if tx.AccountID == accountID {
			owned = append(owned, tx)
		}
	}
	if limit > 0 && len(owned) > limit {
		owned = owned[len(owned)-limit:]
	}
	return owned, nil
}

// AddParams holds the fields for a new ledger entry. Status defaults to
// COMPLETED; Timestamp defaults to the current UTC time. The ID is
// assumed caller-unique (typically random); no uniqueness check is done.
type AddParams struct {
	ID           string
	AccountID    string
	Type         model.TransactionType
	Amount       decimal.Decimal
	Description  string
	BalanceAfter decimal.Decimal
	ReferenceID  string
	Status       string
	Timestamp    string
}

// Add appends a ledger entry unconditionally and rewrites the table.
func (s *Service) Add(params AddParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns, err := s.All()
	if err != nil {
		return false, err
	}

	status := params.Status
	if status == "" {
		status = model.TransactionCompleted
	}
	stamp := params.Timestamp
	if stamp == "" {
		stamp = model.FormatTimestamp(s.now())
	}

	txns = append(txns, model.Transaction{
		ID:           params.ID,
		AccountID:    params.AccountID,
		Type:         params.Type,
		Amount:       params.Amount.StringFixed(2),
		Description:  params.Description,
		BalanceAfter: params.BalanceAfter.StringFixed(2),
		Timestamp:    stamp,
		ReferenceID:  params.ReferenceID,
		Status:       status,
	})

	if err := s.writeAll(txns); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) writeAll(txns []model.Transaction) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating %s: %w", FileName, err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

func (s *Service) path() string {
	return filepath.Join(s.dataDir, FileName)
}
