package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
)

// KeywordSet is a named set of description keywords for the
// salary-deposit query.
type KeywordSet []string

// Two keyword sets exist because the original reporting call sites
// disagreed; both are kept as named configurations rather than picking
// one as canonical.
var (
	DefaultKeywords = KeywordSet{"salary", "deposit"}
	StrictKeywords  = KeywordSet{"salary", "pay", "payroll"}
)

// Matches reports whether a transaction description contains any of
// the keywords, case-insensitively.
func (k KeywordSet) Matches(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range k {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// Engine runs the analytical queries. Every query is a pure function of
// the store contents at call time: it re-reads the tables, builds the
// account index once, and keeps no state between calls.
type Engine struct {
	accounts *accounts.Service
	ledger   *ledger.Service
	now      func() time.Time
	keywords KeywordSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock fixes the "now" used by dormancy queries. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithKeywords selects the salary-deposit keyword set.
func WithKeywords(k KeywordSet) Option {
	return func(e *Engine) { e.keywords = k }
}

// NewEngine creates an analytics Engine over the given stores.
func NewEngine(accts *accounts.Service, led *ledger.Service, opts ...Option) *Engine {
	e := &Engine{
		accounts: accts,
		ledger:   led,
		now:      time.Now,
		keywords: DefaultKeywords,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DormantAccounts returns accounts whose most recent parseable
// transaction is at least daysInactive days old. Accounts with no
// transactions at all are included with a nil LastTransaction; accounts
// whose every timestamp is unparsable have no determinable last
// activity and are excluded.
func (e *Engine) DormantAccounts(daysInactive int) ([]DormantAccount, error) {
	now := e.now().UTC()

	accts, err := e.accounts.All()
	if err != nil {
		return nil, err
	}
	txns, err := e.ledger.All()
	if err != nil {
		return nil, err
	}
	index := IndexByAccount(txns)

	var results []DormantAccount
	for _, acc := range accts {
		bucket := index[acc.ID]
		if len(bucket) == 0 {
			results = append(results, DormantAccount{
				AccountID:     acc.ID,
				CustomerID:    acc.CustomerID,
				AccountNumber: acc.Number,
				Balance:       parseAmount(acc.Balance),
				Status:        acc.Status,
			})
			continue
		}

		latest, ok := latestTimestamp(bucket)
		if !ok {
			continue
		}

		days := daysBetween(latest, now)
		if days >= daysInactive {
			last := latest
			results = append(results, DormantAccount{
				AccountID:       acc.ID,
				CustomerID:      acc.CustomerID,
				AccountNumber:   acc.Number,
				Balance:         parseAmount(acc.Balance),
				Status:          acc.Status,
				LastTransaction: &last,
				DaysInactive:    days,
			})
		}
	}
	return results, nil
}

// DormantWithLargeTransactions restricts dormancy to accounts that had
// at least one historical transaction with |amount| >= threshold.
// Accounts with no transactions are excluded here: with no history
// there is nothing to test against the threshold.
func (e *Engine) DormantWithLargeTransactions(daysInactive int, threshold decimal.Decimal) ([]DormantLargeAccount, error) {
	now := e.now().UTC()

	accts, err := e.accounts.All()
	if err != nil {
		return nil, err
	}
	txns, err := e.ledger.All()
	if err != nil {
		return nil, err
	}
	index := IndexByAccount(txns)

	var results []DormantLargeAccount
	for _, acc := range accts {
		bucket := index[acc.ID]
		if len(bucket) == 0 {
			continue
		}

		latest, latestOK := latestTimestamp(bucket)

		largest := decimal.Zero
		hadLarge := false
		for _, tx := range bucket {
			amt := parseAmount(tx.Amount).Abs()
			if amt.GreaterThan(largest) {
				largest = amt
			}
			if amt.GreaterThanOrEqual(threshold) {
				hadLarge = true
			}
		}

		if !latestOK || !hadLarge {
			continue
		}

		days := daysBetween(latest, now)
		if days >= daysInactive {
			last := latest
			results = append(results, DormantLargeAccount{
				DormantAccount: DormantAccount{
					AccountID:       acc.ID,
					CustomerID:      acc.CustomerID,
					AccountNumber:   acc.Number,
					Balance:         parseAmount(acc.Balance),
					Status:          acc.Status,
					LastTransaction: &last,
					DaysInactive:    days,
				},
				LargestAmount: largest,
			})
		}
	}
	return results, nil
}

// SalaryDepositAccounts returns accounts with at least one transaction
// whose description matches the engine's keyword set and whose amount
// is at least minAmount.
func (e *Engine) SalaryDepositAccounts(minAmount decimal.Decimal) ([]SalaryAccount, error) {
	accts, err := e.accounts.All()
	if err != nil {
		return nil, err
	}
	txns, err := e.ledger.All()
	if err != nil {
		return nil, err
	}
	index := IndexByAccount(txns)

	var results []SalaryAccount
	for _, acc := range accts {
		var qualifying []SalaryTransaction
		maxDeposit := decimal.Zero
		for _, tx := range index[acc.ID] {
			if !e.keywords.Matches(tx.Description) {
				continue
			}
			amt := parseAmount(tx.Amount)
			if amt.LessThan(minAmount) {
				continue
			}
			qualifying = append(qualifying, SalaryTransaction{
				TransactionID: tx.ID,
				Amount:        amt,
				Timestamp:     tx.Timestamp,
				Description:   tx.Description,
			})
			if amt.GreaterThan(maxDeposit) {
				maxDeposit = amt
			}
		}

		if len(qualifying) == 0 {
			continue
		}

		recent := qualifying
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		results = append(results, SalaryAccount{
			AccountID:     acc.ID,
			CustomerID:    acc.CustomerID,
			AccountNumber: acc.Number,
			Balance:       parseAmount(acc.Balance),
			Status:        acc.Status,
			DepositCount:  len(qualifying),
			MaxDeposit:    maxDeposit,
			Recent:        recent,
		})
	}
	return results, nil
}

// HighBalanceAccounts returns accounts with balance >= minBalance,
// sorted by balance descending. The sort is stable so equal balances
// keep their file order. Accounts with malformed balance text are
// skipped rather than ranked at zero.
func (e *Engine) HighBalanceAccounts(minBalance decimal.Decimal) ([]HighBalanceAccount, error) {
	accts, err := e.accounts.All()
	if err != nil {
		return nil, err
	}

	var results []HighBalanceAccount
	for _, acc := range accts {
		bal, err := acc.BalanceAmount()
		if err != nil {
			continue
		}
		if bal.LessThan(minBalance) {
			continue
		}
		rate, err := acc.InterestRateValue()
		if err != nil {
			rate = decimal.Zero
		}
		results = append(results, HighBalanceAccount{
			AccountID:     acc.ID,
			CustomerID:    acc.CustomerID,
			AccountNumber: acc.Number,
			AccountType:   acc.Type,
			Balance:       bal,
			Status:        acc.Status,
			InterestRate:  rate,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Balance.GreaterThan(results[j].Balance)
	})
	return results, nil
}

// latestTimestamp returns the most recent parseable timestamp in a
// bucket; false when none parse.
func latestTimestamp(txns []model.Transaction) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, tx := range txns {
		ts, ok := ParseTimestamp(tx.Timestamp)
		if !ok {
			continue
		}
		if !found || ts.After(latest) {
			latest = ts
			found = true
		}
	}
	return latest, found
}
