package dto

import (
	"time"

	"spendtrack-backend/internal/expense/domain"
)

type ExpenseCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Currency    string  `json:"currency" binding:"required,oneof=USD EUR PLN GBP"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	CategoryID  *uint   `json:"category_id" binding:"required"`
}

type ExpenseUpdateRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Currency    *string  `json:"currency,omitempty" binding:"omitempty,oneof=USD EUR PLN GBP"`
	Amount      *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	CategoryID  *uint    `json:"category_id,omitempty"`
}

// StatisticsQuery filters the aggregate queries. Dates are optional.
type StatisticsQuery struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uint
}

type ExpenseStatistics struct {
	TotalAmount       float64                `json:"total_amount"`
	TotalExpenses     int64                  `json:"total_expenses"`
	AverageExpense    float64                `json:"average_expense"`
	DateRange         map[string]*time.Time  `json:"date_range"`
	CurrencyBreakdown []domain.CurrencyStats `json:"currency_breakdown"`
	CategoryBreakdown []domain.CategoryStats `json:"category_breakdown"`
	PeriodSummary     map[string]string      `json:"period_summary"`
}
