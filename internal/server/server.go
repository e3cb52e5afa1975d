// Package server exposes the store, analytics, and waiver operations
// over HTTP. Handlers only translate between JSON and the core call
// contract; no query or rule logic lives here.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/teller-dev/teller/internal/accounts"
	"github.com/teller-dev/teller/internal/analytics"
	"github.com/teller-dev/teller/internal/audit"
	"github.com/teller-dev/teller/internal/customers"
	"github.com/teller-dev/teller/internal/ledger"
	"github.com/teller-dev/teller/internal/model"
	"github.com/teller-dev/teller/internal/report"
	"github.com/teller-dev/teller/internal/waiver"
)

// Server wires the HTTP routes to the core services.
type Server struct {
	dataDir   string
	customers *customers.Service
	accounts  *accounts.Service
	ledger    *ledger.Service
	engine    *analytics.Engine
	reports   *report.Service
}

// New creates a Server over the given services. Mutations are recorded
// in the audit log under dataDir.
func New(dataDir string, cust *customers.Service, accts *accounts.Service, led *ledger.Service, engine *analytics.Engine) *Server {
	return &Server{
		dataDir:   dataDir,
		customers: cust,
		accounts:  accts,
		ledger:    led,
		engine:    engine,
		reports:   report.NewService(cust, accts, led),
	}
}

// record appends one audit entry. A failed append never fails the
// request that triggered it.
func (s *Server) record(action, entityID, details string) {
	_ = audit.Append(s.dataDir, []audit.Entry{{
		Timestamp: time.Now(),
		Actor:     "api",
		Action:    action,
		EntityID:  entityID,
		Details:   details,
	}})
}

// Router builds the gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	api.POST("/customers", s.addCustomer)
	api.PUT("/customers/:id/status", s.updateCustomerStatus)
	api.GET("/customers/:id/summary", s.customerSummary)
	api.POST("/accounts", s.addAccount)
	api.PUT("/accounts/:id/balance", s.updateAccountBalance)
	api.GET("/accounts/:id/summary", s.accountSummary)
	api.POST("/transactions", s.addTransaction)

	analyticsGroup := api.Group("/analytics")
	analyticsGroup.GET("/dormant", s.dormant)
	analyticsGroup.GET("/dormant-large", s.dormantLarge)
	analyticsGroup.GET("/salary", s.salary)
	analyticsGroup.GET("/high-balance", s.highBalance)

	api.POST("/waivers/evaluate", s.evaluateWaivers)

	return r
}

type customerRequest struct {
	ID          string `json:"id" binding:"required"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	Status      string `json:"status"`
}

func (s *Server) addCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ok, err := s.customers.Add(customers.AddParams{
		ID:          req.ID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		Status:      model.CustomerStatus(req.Status),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "customer already exists"})
		return
	}
	s.record("add_customer", req.ID, "created via POST /api/customers")
	c.JSON(http.StatusCreated, gin.H{"customerId": req.ID})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) updateCustomerStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ok, err := s.customers.UpdateStatus(c.Param("id"), model.CustomerStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	s.record("update_customer_status", c.Param("id"), "status set to "+req.Status)
	c.JSON(http.StatusOK, gin.H{"customerId": c.Param("id"), "status": req.Status})
}

func (s *Server) customerSummary(c *gin.Context) {
	summary, ok, err := s.reports.Customer(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type accountRequest struct {
	ID           string `json:"id" binding:"required"`
	CustomerID   string `json:"customerId" binding:"required"`
	Type         string `json:"type"`
	Number       string `json:"number"`
	Currency     string `json:"currency"`
	Balance      string `json:"balance"`
	InterestRate string `json:"interestRate"`
	Status       string `json:"status"`
}

func (s *Server) addAccount(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid balance"})
		return
	}

	ok, err := s.accounts.Add(accounts.AddParams{
		ID:           req.ID,
		CustomerID:   req.CustomerID,
		Type:         model.AccountType(req.Type),
		Number:       req.Number,
		Currency:     req.Currency,
		Balance:      balance,
		InterestRate: req.InterestRate,
		Status:       model.AccountStatus(req.Status),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
		return
	}
	s.record("add_account", req.ID, "created for customer "+req.CustomerID)
	c.JSON(http.StatusCreated, gin.H{"accountId": req.ID})
}

type balanceRequest struct {
	Balance string `json:"balance" binding:"required"`
}

func (s *Server) updateAccountBalance(c *gin.Context) {
	var req balanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid balance"})
		return
	}

	ok, err := s.accounts.UpdateBalance(c.Param("id"), balance)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	s.record("update_balance", c.Param("id"), "balance set to "+balance.StringFixed(2))
	c.JSON(http.StatusOK, gin.H{"accountId": c.Param("id"), "balance": balance.StringFixed(2)})
}

func (s *Server) accountSummary(c *gin.Context) {
	summary, ok, err := s.reports.Account(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type transactionRequest struct {
	ID           string `json:"id" binding:"required"`
	AccountID    string `json:"accountId" binding:"required"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	BalanceAfter string `json:"balanceAfter"`
	ReferenceID  string `json:"referenceId"`
	Status       string `json:"status"`
}

func (s *Server) addTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	balanceAfter, err := decimal.NewFromString(req.BalanceAfter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid balanceAfter"})
		return
	}

	ok, err := s.ledger.Add(ledger.AddParams{
		ID:           req.ID,
		AccountID:    req.AccountID,
		Type:         model.TransactionType(req.Type),
		Amount:       amount,
		Description:  req.Description,
		BalanceAfter: balanceAfter,
		ReferenceID:  req.ReferenceID,
		Status:       req.Status,
	})
	if err != nil || !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record transaction"})
		return
	}
	s.record("add_transaction", req.ID, "posted to account "+req.AccountID)
	c.JSON(http.StatusCreated, gin.H{"transactionId": req.ID})
}

func (s *Server) dormant(c *gin.Context) {
	days := intQuery(c, "days", 180)
	results, err := s.engine.DormantAccounts(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "accounts": results})
}

func (s *Server) dormantLarge(c *gin.Context) {
	days := intQuery(c, "days", 180)
	threshold := decimalQuery(c, "threshold", decimal.NewFromInt(1000))
	results, err := s.engine.DormantWithLargeTransactions(days, threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "accounts": results})
}

func (s *Server) salary(c *gin.Context) {
	min := decimalQuery(c, "min", decimal.NewFromInt(500))
	results, err := s.engine.SalaryDepositAccounts(min)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "accounts": results})
}

func (s *Server) highBalance(c *gin.Context) {
	min := decimalQuery(c, "min", decimal.NewFromInt(100000))
	results, err := s.engine.HighBalanceAccounts(min)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "accounts": results})
}

type waiverRequest struct {
	AccountID           string  `json:"accountId" binding:"required"`
	Balance             string  `json:"balance"`
	MonthlyTransactions int     `json:"monthlyTransactions"`
	TenureMonths        int     `json:"tenureMonths"`
	Status              string  `json:"status"`
	Premium             bool    `json:"premium"`
	NewCustomer         bool    `json:"newCustomer"`
	AnnualFee           float64 `json:"annualFee"`
	MonthlyFee          float64 `json:"monthlyFee"`
}

func (r waiverRequest) toCore() waiver.Request {
	balance, err := decimal.NewFromString(r.Balance)
	if err != nil {
		balance = decimal.Zero
	}
	return waiver.Request{
		AccountID:           r.AccountID,
		Balance:             balance,
		MonthlyTransactions: r.MonthlyTransactions,
		TenureMonths:        r.TenureMonths,
		Status:              model.AccountStatus(r.Status),
		Premium:             r.Premium,
		NewCustomer:         r.NewCustomer,
		AnnualFee:           decimal.NewFromFloat(r.AnnualFee),
		MonthlyFee:          decimal.NewFromFloat(r.MonthlyFee),
	}
}

func (s *Server) evaluateWaivers(c *gin.Context) {
	var reqs []waiverRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	core := make([]waiver.Request, len(reqs))
	for i, r := range reqs {
		core[i] = r.toCore()
	}
	c.JSON(http.StatusOK, gin.H{"decisions": waiver.EvaluateBatch(core)})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func decimalQuery(c *gin.Context, name string, fallback decimal.Decimal) decimal.Decimal {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return v
}
