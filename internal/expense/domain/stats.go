package domain

// ExpenseTotals is the overall aggregate over a filtered expense set.
type ExpenseTotals struct {
	TotalAmount    float64 `json:"total_amount"`
	TotalExpenses  int64   `json:"total_expenses"`
	AverageExpense float64 `json:"average_expense"`
}

// CurrencyStats is the per-currency aggregate breakdown.
type CurrencyStats struct {
	Currency      string  `json:"currency"`
	TotalAmount   float64 `json:"total_amount"`
	ExpenseCount  int64   `json:"expense_count"`
	AverageAmount float64 `json:"average_amount"`
}

// CategoryStats is the per-category aggregate breakdown.
type CategoryStats struct {
	CategoryID    uint    `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	TotalAmount   float64 `json:"total_amount"`
	ExpenseCount  int64   `json:"expense_count"`
	AverageAmount float64 `json:"average_amount"`
}

// CategoryUsage is a category with its usage counters across all users.
type CategoryUsage struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	ExpenseCount int64   `json:"expense_count"`
	TotalAmount  float64 `json:"total_amount"`
}
