// Package seed generates sample data files for local development and
// demos. Rows are written directly through the table codecs rather than
// the per-row store operations, which would rewrite each file once per
// row.
package seed

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/customers"
	"github.com/teller-dev/teller/internal/id"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
)

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph",
	"Jessica", "Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy",
	"Daniel", "Lisa", "Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
}

var streets = []string{
	"Main St", "Oak Ave", "Pine Rd", "Maple St", "Cedar Ln", "Elm St", "Birch Dr", "Walnut Ave",
}

var cities = []string{
	"New York NY", "Los Angeles CA", "Chicago IL", "Houston TX", "Phoenix AZ",
	"Philadelphia PA", "San Antonio TX",
}

var descriptions = []string{
	"ATM Withdrawal", "POS Purchase", "Salary Deposit", "Transfer In",
	"Transfer Out", "Interest Credit", "Fee",
}

// Params controls sample-data generation.
type Params struct {
	Customers int   // default 120
	Seed      int64 // 0 = time-based
}

// Counts reports how many rows Generate wrote.
type Counts struct {
	Customers    int
	Accounts     int
	Transactions int
}

// Generate writes customers.csv, accounts.csv, and ledger.csv under
// dataDir, replacing any existing tables.
func Generate(dataDir string, params Params) (Counts, error) {
	n := params.Customers
	if n <= 0 {
		n = 120
	}
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	now := time.Now().UTC()

	custs := generateCustomers(rng, now, n)
	accts := generateAccounts(rng, now, custs)
	txns := generateLedger(rng, now, accts)

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return Counts{}, fmt.Errorf("creating data dir: %w", err)
	}
	if err := writeFile(filepath.Join(dataDir, customers.FileName), func(f *os.File) error {
		return customers.WriteCustomers(f, custs)
	}); err != nil {
		return Counts{}, err
	}
	if err := writeFile(filepath.Join(dataDir, accounts.FileName), func(f *os.File) error {
		return accounts.WriteAccounts(f, accts)
	}); err != nil {
		return Counts{}, err
	}
	if err := writeFile(filepath.Join(dataDir, ledger.FileName), func(f *os.File) error {
		return ledger.WriteTransactions(f, txns)
	}); err != nil {
		return Counts{}, err
	}

	return Counts{Customers: len(custs), Accounts: len(accts), Transactions: len(txns)}, nil
}

func generateCustomers(rng *rand.Rand, now time.Time, n int) []model.Customer {
	custs := make([]model.Customer, 0, n)
	for i := 1; i <= n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		status := pickWeighted(rng, []model.CustomerStatus{
			model.CustomerActive, model.CustomerInactive, model.CustomerClosed,
		}, []float64{0.85, 0.10, 0.05})

		custs = append(custs, model.Customer{
			ID:        id.FormatCustomerID(i),
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Phone:     fmt.Sprintf("555-%04d", 1000+rng.Intn(9000)),
			Address: fmt.Sprintf("%d %s %s %05d",
				10+rng.Intn(990), streets[rng.Intn(len(streets))],
				cities[rng.Intn(len(cities))], 10000+rng.Intn(90000)),
			DateOfBirth: now.AddDate(0, 0, -(20*365 + rng.Intn(50*365))).Format("2006-01-02"),
			CreatedDate: model.FormatTimestamp(randTime(rng, now)),
			Status:      status,
		})
	}
	return custs
}

func generateAccounts(rng *rand.Rand, now time.Time, custs []model.Customer) []model.Account {
	var accts []model.Account
	seq := 1
	for _, c := range custs {
		for i := 0; i < 1+rng.Intn(3); i++ {
			accountType := pickWeighted(rng, []model.AccountType{
				model.AccountChecking, model.AccountSavings, model.AccountMoneyMarket,
			}, []float64{0.6, 0.3, 0.1})

			rate := "0.0"
			switch accountType {
			case model.AccountSavings:
				rate = fmt.Sprintf("%.2f", 0.1+rng.Float64()*3.4)
			case model.AccountMoneyMarket:
				rate = fmt.Sprintf("%.2f", 1.0+rng.Float64()*3.0)
			}

			accts = append(accts, model.Account{
				ID:         id.FormatAccountID(seq),
				CustomerID: c.ID,
				Type:       accountType,
				Number:     fmt.Sprintf("%d", 1000000000+seq),
				Currency:   "USD",
				Balance:    fmt.Sprintf("%.2f", rng.Float64()*200000),
				Status: pickWeighted(rng, []model.AccountStatus{
					model.AccountActive, model.AccountFrozen, model.AccountClosed,
				}, []float64{0.9, 0.05, 0.05}),
				InterestRate: rate,
				OpenedDate:   model.FormatTimestamp(randTime(rng, now)),
				ClosedDate:   "",
			})
			seq++
		}
	}
	return accts
}

func generateLedger(rng *rand.Rand, now time.Time, accts []model.Account) []model.Transaction {
	var txns []model.Transaction
	seq := 1
	for _, acc := range accts {
		for i := 0; i < rng.Intn(21); i++ {
			txType := model.TransactionDebit
			if rng.Intn(2) == 0 {
				txType = model.TransactionCredit
			}

			// A small share of large amounts so threshold queries have hits.
			var amount float64
			if rng.Float64() < 0.08 {
				amount = 1000 + rng.Float64()*49000
			} else {
				amount = 1 + rng.Float64()*1999
			}

			balance := decimal.Zero
			if b, err := acc.BalanceAmount(); err == nil {
				balance = b
			}
			drift := decimal.NewFromFloat(rng.Float64()*1000 - 500)

			txns = append(txns, model.Transaction{
				ID:           id.FormatTransactionID(seq),
				AccountID:    acc.ID,
				Type:         txType,
				Amount:       fmt.Sprintf("%.2f", amount),
				Description:  descriptions[rng.Intn(len(descriptions))],
				BalanceAfter: balance.Add(drift).StringFixed(2),
				Timestamp:    model.FormatTimestamp(randTime(rng, now)),
				ReferenceID:  "",
				Status:       model.TransactionCompleted,
			})
			seq++
		}
	}

	// Shuffle so the ledger is not grouped by account, like a real one.
	rng.Shuffle(len(txns), func(i, j int) {
		txns[i], txns[j] = txns[j], txns[i]
	})
	return txns
}

// randTime returns a random instant between 2019-01-01 and now.
func randTime(rng *rand.Rand, now time.Time) time.Time {
	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	span := now.Sub(start)
	return start.Add(time.Duration(rng.Int63n(int64(span))))
}

func pickWeighted[T any](rng *rand.Rand, values []T, weights []float64) T {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
