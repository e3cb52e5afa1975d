// Package waiver implements the credit-card fee waiver decision table.
//
// Rules form a fixed ordered list evaluated with first-match-wins
// semantics. The order is load-bearing: the inactive-account check runs
// before every positive-eligibility rule, so a frozen premium account
// with a large balance still gets no waiver. A catch-all rule at the
// end guarantees every request produces a decision.
package waiver

import (
	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/model"
)

// Type is the kind of waiver granted.
type Type string

const (
	FullWaiver    Type = "FULL_WAIVER"
	PartialWaiver Type = "PARTIAL_WAIVER"
	PremiumWaiver Type = "PREMIUM_WAIVER"
	NoWaiver      Type = "NO_WAIVER"
)

// Request is a per-account snapshot evaluated against the rule table.
// It is ephemeral and never persisted.
type Request struct {
	AccountID           string
	Balance             decimal.Decimal
	MonthlyTransactions int
	TenureMonths        int
	Status              model.AccountStatus
	Premium             bool
	NewCustomer         bool
	AnnualFee           decimal.Decimal
	MonthlyFee          decimal.Decimal
}

// Decision is the outcome of evaluating one request.
type Decision struct {
	AccountID        string
	Type             Type
	AnnualFeeWaived  decimal.Decimal
	MonthlyFeeWaived decimal.Decimal
	TotalWaived      decimal.Decimal
	Reason           string
	RuleApplied      string
	Eligible         bool
}

// Rule is one named condition/outcome pair in the decision table.
type Rule struct {
	Name      string
	Condition func(Request) bool
	Decide    func(Request) Decision
}

var (
	twelve          = decimal.NewFromInt(12)
	balancePremium  = decimal.NewFromInt(100000)
	balanceHigh     = decimal.NewFromInt(50000)
	balanceActive   = decimal.NewFromInt(10000)
	pctPremiumTier  = decimal.NewFromFloat(0.75)
	pctHighBalance  = decimal.NewFromFloat(0.5)
	pctActiveUser   = decimal.NewFromFloat(0.25)
	pctLongTenure   = decimal.NewFromFloat(0.20)
	minMonthlyTxns  = 20
	minTenureMonths = 60
)

// Rules returns the decision table in priority order. Callers must not
// reorder it.
func Rules() []Rule {
	return []Rule{
		{
			Name: "inactive_account",
			Condition: func(req Request) bool {
				return req.Status == model.AccountFrozen || req.Status == model.AccountClosed
			},
			Decide: func(req Request) Decision {
				return noWaiver(req, "inactive_account", "Account not in active status")
			},
		},
		{
			Name:      "new_customer",
			Condition: func(req Request) bool { return req.NewCustomer },
			Decide: func(req Request) Decision {
				return Decision{
					AccountID:        req.AccountID,
					Type:             FullWaiver,
					AnnualFeeWaived:  req.AnnualFee,
					MonthlyFeeWaived: decimal.Zero,
					TotalWaived:      req.AnnualFee,
					Reason:           "New customer promotion",
					RuleApplied:      "new_customer",
					Eligible:         true,
				}
			},
		},
		{
			Name: "premium_customer",
			Condition: func(req Request) bool {
				return req.Premium && req.Balance.GreaterThanOrEqual(balancePremium)
			},
			Decide: func(req Request) Decision {
				return Decision{
					AccountID:        req.AccountID,
					Type:             FullWaiver,
					AnnualFeeWaived:  req.AnnualFee,
					MonthlyFeeWaived: req.MonthlyFee,
					TotalWaived:      req.AnnualFee.Add(req.MonthlyFee.Mul(twelve)),
					Reason:           "Premium customer status with high balance",
					RuleApplied:      "premium_customer",
					Eligible:         true,
				}
			},
		},
		{
			Name: "premium_waiver",
			Condition: func(req Request) bool {
				return req.Premium && inMidBalanceBand(req.Balance)
			},
			Decide: func(req Request) Decision {
				annual := req.AnnualFee.Mul(pctPremiumTier)
				return Decision{
					AccountID:        req.AccountID,
					Type:             PremiumWaiver,
					AnnualFeeWaived:  annual,
					MonthlyFeeWaived: req.MonthlyFee,
					TotalWaived:      annual.Add(req.MonthlyFee.Mul(twelve)),
					Reason:           "Premium waiver: 75% annual fee + free monthly maintenance for premium customer",
					RuleApplied:      "premium_waiver",
					Eligible:         true,
				}
			},
		},
		{
			Name: "high_balance",
			Condition: func(req Request) bool {
				return inMidBalanceBand(req.Balance)
			},
			Decide: func(req Request) Decision {
				annual := req.AnnualFee.Mul(pctHighBalance)
				return Decision{
					AccountID:        req.AccountID,
					Type:             PartialWaiver,
					AnnualFeeWaived:  annual,
					MonthlyFeeWaived: decimal.Zero,
					TotalWaived:      annual,
					Reason:           "High balance threshold met (50k-100k)",
					RuleApplied:      "high_balance",
					Eligible:         true,
				}
			},
		},
		{
			Name: "active_user",
			Condition: func(req Request) bool {
				return req.MonthlyTransactions >= minMonthlyTxns &&
					req.Balance.GreaterThanOrEqual(balanceActive)
			},
			Decide: func(req Request) Decision {
				annual := req.AnnualFee.Mul(pctActiveUser)
				return Decision{
					AccountID:        req.AccountID,
					Type:             PartialWaiver,
					AnnualFeeWaived:  annual,
					MonthlyFeeWaived: decimal.Zero,
					TotalWaived:      annual,
					Reason:           "High transaction activity (20+ monthly transactions)",
					RuleApplied:      "active_user",
					Eligible:         true,
				}
			},
		},
		{
			Name: "long_tenure",
			Condition: func(req Request) bool {
				return req.TenureMonths >= minTenureMonths && req.Status == model.AccountActive
			},
			Decide: func(req Request) Decision {
				annual := req.AnnualFee.Mul(pctLongTenure)
				return Decision{
					AccountID:        req.AccountID,
					Type:             PartialWaiver,
					AnnualFeeWaived:  annual,
					MonthlyFeeWaived: decimal.Zero,
					TotalWaived:      annual,
					Reason:           "Long account tenure (5+ years)",
					RuleApplied:      "long_tenure",
					Eligible:         true,
				}
			},
		},
		{
			Name:      "default",
			Condition: func(Request) bool { return true },
			Decide: func(req Request) Decision {
				return noWaiver(req, "default", "No eligibility criteria met")
			},
		},
	}
}

// Evaluate runs the request through the rule table and returns the
// first matching rule's decision.
func Evaluate(req Request) Decision {
	for _, rule := range Rules() {
		if rule.Condition(req) {
			return rule.Decide(req)
		}
	}
	// Unreachable: the default rule always matches.
	return noWaiver(req, "default", "No eligibility criteria met")
}

// EvaluateBatch evaluates each request independently, returning one
// decision per request in input order.
func EvaluateBatch(reqs []Request) []Decision {
	decisions := make([]Decision, len(reqs))
	for i, req := range reqs {
		decisions[i] = Evaluate(req)
	}
	return decisions
}

func inMidBalanceBand(balance decimal.Decimal) bool {
	return balance.GreaterThanOrEqual(balanceHigh) && balance.LessThan(balancePremium)
}

func noWaiver(req Request, rule, reason string) Decision {
	return Decision{
		AccountID:        req.AccountID,
		Type:             NoWaiver,
		AnnualFeeWaived:  decimal.Zero,
		MonthlyFeeWaived: decimal.Zero,
		TotalWaived:      decimal.Zero,
		Reason:           reason,
		RuleApplied:      rule,
		Eligible:         false,
	}
}
