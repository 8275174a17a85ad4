package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/forecast"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Category    string          `json:"category"`
	Merchant    string          `json:"merchant"`
	Source      string          `json:"source"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Amount:      t.Amount,
		Direction:   string(t.Direction),
		Category:    string(t.Category),
		Merchant:    t.Merchant,
		Source:      string(t.Source),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// BillResponse represents a bill in API responses.
type BillResponse struct {
	ID            string          `json:"id"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	AccountID     string          `json:"account_id"`
	Merchant      string          `json:"merchant"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	IsRecurring   bool            `json:"is_recurring"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BillFromDomain converts a domain bill to a response.
func BillFromDomain(b *domain.Bill) *BillResponse {
	return &BillResponse{
		ID:            b.ID,
		TransactionID: b.TransactionID,
		AccountID:     b.AccountID,
		Merchant:      b.Merchant,
		Amount:        b.Amount,
		DueDate:       b.DueDate,
		Status:        string(b.Status),
		IsRecurring:   b.IsRecurring,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BillsFromDomain converts domain bills to responses.
func BillsFromDomain(bills []*domain.Bill) []*BillResponse {
	result := make([]*BillResponse, len(bills))
	for i, b := range bills {
		result[i] = BillFromDomain(b)
	}
	return result
}

// IngestResponse is the outcome of a message submission. Bill is present
// only when the message was recognized as a bill.
type IngestResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Bill        *BillResponse        `json:"bill,omitempty"`
}

// ListTransactionsResponse wraps a page of transactions. Count is the size
// of this page, not the number of matching rows overall.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Count        int64                  `json:"count"`
}

// ListBillsResponse wraps a page of bills. Count is the size of this page,
// not the number of matching rows overall.
type ListBillsResponse struct {
	Bills []*BillResponse `json:"bills"`
	Count int64           `json:"count"`
}

// BillStatsResponse aggregates bill amounts for one account.
type BillStatsResponse struct {
	TotalBills    int             `json:"total_bills"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// BillStatsFromDomain converts domain stats to a response.
func BillStatsFromDomain(s *domain.BillStats) *BillStatsResponse {
	return &BillStatsResponse{
		TotalBills:    s.TotalBills,
		TotalAmount:   s.TotalAmount,
		PendingAmount: s.PendingAmount,
		OverdueAmount: s.OverdueAmount,
		PaidAmount:    s.PaidAmount,
	}
}

// SweepResponse reports the outcome of an overdue sweep.
type SweepResponse struct {
	Updated int64 `json:"updated"`
}

// ForecastResponse is the outcome of a cash flow forecast.
type ForecastResponse struct {
	NetCashFlow     decimal.Decimal `json:"net_cashflow"`
	AtRisk          bool            `json:"at_risk"`
	RiskProbability float64         `json:"risk_probability"`
	RiskLevel       string          `json:"risk_level"`
}

// ForecastFromPrediction converts a predictor outcome to a response.
func ForecastFromPrediction(p *forecast.Prediction) *ForecastResponse {
	return &ForecastResponse{
		NetCashFlow:     p.NetCashFlow,
		AtRisk:          p.AtRisk,
		RiskProbability: p.RiskProbability,
		RiskLevel:       string(p.RiskLevel),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
