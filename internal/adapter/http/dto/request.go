package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/forecast"
	"github.com/mehdib/finsms/internal/usecase"
)

// IngestMessageRequest represents a raw message submission.
type IngestMessageRequest struct {
	AccountID string `json:"account_id"`
	Text      string `json:"text"`
}

// ToUseCaseInput converts to use case input.
func (r *IngestMessageRequest) ToUseCaseInput() usecase.IngestInput {
	return usecase.IngestInput{
		AccountID: r.AccountID,
		RawText:   r.Text,
	}
}

// CreateTransactionRequest represents a manually entered transaction.
type CreateTransactionRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction,omitempty"`
	Category    string          `json:"category,omitempty"`
	Merchant    string          `json:"merchant,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateManualInput {
	return usecase.CreateManualInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Direction:   domain.Direction(r.Direction),
		Category:    domain.Category(r.Category),
		Merchant:    r.Merchant,
		Description: r.Description,
	}
}

// UpdateBillRequest represents a partial bill update. Absent fields are left
// unchanged.
type UpdateBillRequest struct {
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsRecurring *bool      `json:"is_recurring,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBillRequest) ToUseCaseInput(id string) usecase.UpdateBillInput {
	input := usecase.UpdateBillInput{
		ID:          id,
		DueDate:     r.DueDate,
		IsRecurring: r.IsRecurring,
	}
	if r.Status != nil {
		status := domain.BillStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// ForecastRequest carries the monthly aggregates for a cash flow forecast.
type ForecastRequest struct {
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	MonthlyEMI      decimal.Decimal `json:"monthly_emi"`
	Savings         decimal.Decimal `json:"savings"`
}

// ToForecastInput converts to predictor input.
func (r *ForecastRequest) ToForecastInput() forecast.Input {
	return forecast.Input{
		MonthlyIncome:   r.MonthlyIncome,
		MonthlyExpenses: r.MonthlyExpenses,
		MonthlyEMI:      r.MonthlyEMI,
		Savings:         r.Savings,
	}
}
