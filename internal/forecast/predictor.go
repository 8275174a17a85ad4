// Package forecast provides a rule-based monthly cash flow prediction from
// aggregate income, expense, loan installment and savings figures.
package forecast

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveIncome is returned when monthly income is zero or negative,
// which would make the expense and savings ratios meaningless.
var ErrNonPositiveIncome = errors.New("monthly income must be positive")

// RiskLevel buckets a prediction into a coarse label.
type RiskLevel string

const (
	RiskLow  RiskLevel = "low"
	RiskHigh RiskLevel = "high"
)

// Input carries the monthly aggregates the prediction is computed from.
type Input struct {
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	MonthlyEMI      decimal.Decimal
	Savings         decimal.Decimal
}

// Prediction is the outcome of a cash flow forecast.
type Prediction struct {
	NetCashFlow     decimal.Decimal
	AtRisk          bool
	RiskProbability float64
	RiskLevel       RiskLevel
}

// Ratio thresholds and flat adjustments for the rule table. Adjustments are
// in the same currency unit as the input figures.
var (
	highExpenseRatio     = decimal.NewFromFloat(0.8)
	moderateExpenseRatio = decimal.NewFromFloat(0.6)
	lowExpenseRatio      = decimal.NewFromFloat(0.3)

	strongSavingsRatio = decimal.NewFromInt(6)
	weakSavingsRatio   = decimal.NewFromInt(2)

	highExpensePenalty     = decimal.NewFromInt(-300)
	moderateExpensePenalty = decimal.NewFromInt(-150)
	lowExpenseBonus        = decimal.NewFromInt(200)
	savingsBufferEffect    = decimal.NewFromInt(100)

	severeRiskRatio   = decimal.NewFromFloat(0.85)
	elevatedRiskRatio = decimal.NewFromFloat(0.75)
	moderateRiskRatio = decimal.NewFromFloat(0.65)

	severeShortfall   = decimal.NewFromInt(-1000)
	elevatedShortfall = decimal.NewFromInt(-500)
)

// Predict applies the rule table to the input aggregates. The base figure is
// income minus expenses and installments; ratio tiers then shift it to
// reflect spending discipline and the savings buffer.
func Predict(in Input) (*Prediction, error) {
	if !in.MonthlyIncome.IsPositive() {
		return nil, ErrNonPositiveIncome
	}

	expenseRatio := in.MonthlyExpenses.Div(in.MonthlyIncome)
	savingsRatio := in.Savings.Div(in.MonthlyIncome)

	base := in.MonthlyIncome.Sub(in.MonthlyExpenses.Add(in.MonthlyEMI))

	adjustment := decimal.Zero
	switch {
	case expenseRatio.GreaterThan(highExpenseRatio):
		adjustment = highExpensePenalty
	case expenseRatio.GreaterThan(moderateExpenseRatio):
		adjustment = moderateExpensePenalty
	case expenseRatio.LessThan(lowExpenseRatio):
		adjustment = lowExpenseBonus
	}

	if savingsRatio.GreaterThan(strongSavingsRatio) {
		adjustment = adjustment.Add(savingsBufferEffect)
	} else if savingsRatio.LessThan(weakSavingsRatio) {
		adjustment = adjustment.Sub(savingsBufferEffect)
	}

	net := base.Add(adjustment)

	pred := &Prediction{NetCashFlow: net.Round(2)}
	switch {
	case expenseRatio.GreaterThan(severeRiskRatio) || net.LessThan(severeShortfall):
		pred.AtRisk = true
		pred.RiskProbability = 0.95
	case expenseRatio.GreaterThan(elevatedRiskRatio) || net.LessThan(elevatedShortfall):
		pred.AtRisk = true
		pred.RiskProbability = 0.75
	case expenseRatio.GreaterThan(moderateRiskRatio) || net.IsNegative():
		pred.AtRisk = true
		pred.RiskProbability = 0.4
	default:
		pred.RiskProbability = 0.05
	}

	if pred.AtRisk {
		pred.RiskLevel = RiskHigh
	} else {
		pred.RiskLevel = RiskLow
	}

	return pred, nil
}
