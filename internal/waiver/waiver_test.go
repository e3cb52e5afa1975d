package waiver

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teller-dev/teller/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeRequest() Request {
	return Request{
		AccountID:  "A00001",
		Status:     model.AccountActive,
		AnnualFee:  dec("299.00"),
		MonthlyFee: dec("5.00"),
	}
}

func TestInactiveOverridesPremium(t *testing.T) {
	// A frozen premium account with a large balance must resolve to
	// inactive_account: priority order beats a later, richer match.
	req := activeRequest()
	req.Status = model.AccountFrozen
	req.Premium = true
	req.Balance = dec("150000")

	d := Evaluate(req)
	assert.Equal(t, "inactive_account", d.RuleApplied)
	assert.Equal(t, NoWaiver, d.Type)
	assert.False(t, d.Eligible)
	assert.True(t, d.TotalWaived.IsZero())
}

func TestClosedAccount(t *testing.T) {
	req := activeRequest()
	req.Status = model.AccountClosed

	d := Evaluate(req)
	assert.Equal(t, "inactive_account", d.RuleApplied)
	assert.Equal(t, "Account not in active status", d.Reason)
}

func TestNewCustomer(t *testing.T) {
	req := activeRequest()
	req.NewCustomer = true
	req.Balance = dec("150000") // would also match premium_customer

	d := Evaluate(req)
	assert.Equal(t, "new_customer", d.RuleApplied)
	assert.Equal(t, FullWaiver, d.Type)
	assert.True(t, d.AnnualFeeWaived.Equal(dec("299.00")))
	assert.True(t, d.MonthlyFeeWaived.IsZero(), "annual fee only")
	assert.True(t, d.TotalWaived.Equal(dec("299.00")))
	assert.True(t, d.Eligible)
}

func TestPremiumCustomer(t *testing.T) {
	req := activeRequest()
	req.Premium = true
	req.Balance = dec("100000")

	d := Evaluate(req)
	assert.Equal(t, "premium_customer", d.RuleApplied)
	assert.Equal(t, FullWaiver, d.Type)
	assert.True(t, d.AnnualFeeWaived.Equal(dec("299.00")))
	assert.True(t, d.MonthlyFeeWaived.Equal(dec("5.00")))
	assert.True(t, d.TotalWaived.Equal(dec("359.00")), "annual + monthly x 12")
}

func TestPremiumWaiverTier(t *testing.T) {
	req := activeRequest()
	req.Premium = true
	req.Balance = dec("75000")
	req.AnnualFee = dec("200.00")
	req.MonthlyFee = dec("10.00")

	d := Evaluate(req)
	assert.Equal(t, "premium_waiver", d.RuleApplied)
	assert.Equal(t, PremiumWaiver, d.Type)
	assert.True(t, d.AnnualFeeWaived.Equal(dec("150.00")), "75% of annual fee")
	assert.True(t, d.MonthlyFeeWaived.Equal(dec("10.00")))
	assert.True(t, d.TotalWaived.Equal(dec("270.00")))
}

func TestHighBalanceBoundary(t *testing.T) {
	// Exactly 50000 (non-premium) hits high_balance.
	req := activeRequest()
	req.Balance = dec("50000")
	req.AnnualFee = dec("100.00")

	d := Evaluate(req)
	assert.Equal(t, "high_balance", d.RuleApplied)
	assert.Equal(t, PartialWaiver, d.Type)
	assert.True(t, d.AnnualFeeWaived.Equal(dec("50.00")), "50% of annual fee")

	// A cent below falls through.
	req.Balance = dec("49999.99")
	d = Evaluate(req)
	assert.Equal(t, "default", d.RuleApplied)
}

func TestHighBalanceUpperBound(t *testing.T) {
	// 100000 without premium is above the 50k-100k band and, with no
	// other criteria, falls through to default.
	req := activeRequest()
	req.Balance = dec("100000")

	d := Evaluate(req)
	assert.Equal(t, "default", d.RuleApplied)
}

func TestActiveUser(t *testing.T) {
	req := activeRequest()
	req.Balance = dec("10000")
	req.MonthlyTransactions = 20
	req.AnnualFee = dec("99.00")

	d := Evaluate(req)
	assert.Equal(t, "active_user", d.RuleApplied)
	assert.True(t, d.AnnualFeeWaived.Equal(dec("24.75")), "25% of annual fee")

	// 19 transactions is not enough.
	req.MonthlyTransactions = 19
	d = Evaluate(req)
	assert.NotEqual(t, "active_user", d.RuleApplied)
}

func TestLongTenure(t *testing.T) {
	req := activeRequest()
	req.TenureMonths = 60
	req.AnnualFee = dec("100.00")

	d := Evaluate(req)
	assert.Equal(t, "long_tenure", d.RuleApplied)
	assert.True(t, d.AnnualFeeWaived.Equal(dec("20.00")), "20% of annual fee")
}

func TestDefault(t *testing.T) {
	req := activeRequest()
	req.Balance = dec("5000")

	d := Evaluate(req)
	assert.Equal(t, "default", d.RuleApplied)
	assert.Equal(t, NoWaiver, d.Type)
	assert.Equal(t, "No eligibility criteria met", d.Reason)
	assert.False(t, d.Eligible)
}

func TestRuleOrder(t *testing.T) {
	rules := Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	assert.Equal(t, []string{
		"inactive_account",
		"new_customer",
		"premium_customer",
		"premium_waiver",
		"high_balance",
		"active_user",
		"long_tenure",
		"default",
	}, names)
}

func TestEvaluateBatch_OrderPreserved(t *testing.T) {
	frozen := activeRequest()
	frozen.Status = model.AccountFrozen

	newcomer := activeRequest()
	newcomer.NewCustomer = true

	nobody := activeRequest()

	decisions := EvaluateBatch([]Request{frozen, newcomer, nobody})
	require.Len(t, decisions, 3)
	assert.Equal(t, "inactive_account", decisions[0].RuleApplied)
	assert.Equal(t, "new_customer", decisions[1].RuleApplied)
	assert.Equal(t, "default", decisions[2].RuleApplied)

	// Each batch decision matches the isolated evaluation.
	assert.Equal(t, Evaluate(frozen), decisions[0])
	assert.Equal(t, Evaluate(newcomer), decisions[1])
	assert.Equal(t, Evaluate(nobody), decisions[2])
}

func TestEvaluateBatch_Empty(t *testing.T) {
	assert.Empty(t, EvaluateBatch(nil))
}
