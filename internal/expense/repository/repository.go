package repository

import (
	"time"

	"spendtrack-backend/internal/expense/domain"
)

// StatsFilter narrows the aggregate queries. OwnerID is always applied;
// the rest are optional.
type StatsFilter struct {
	OwnerID    uint
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uint
}

// CategoryRepository is the persistence contract for spending categories.
// Lookups return (nil, nil) when no row matches.
type CategoryRepository interface {
	Create(category *domain.Category) error
	FindByID(id uint) (*domain.Category, error)
	FindByName(name string) (*domain.Category, error)
	FindAll(offset, limit int) ([]domain.Category, error)
	FindAllWithUsage(offset, limit int) ([]domain.CategoryUsage, error)
	FindByIDWithUsage(id uint) (*domain.CategoryUsage, error)
	Update(category *domain.Category) error
	Delete(id uint) error
	SeedDefaults() error
}

// ExpenseRepository is the persistence contract for expenses, including
// the aggregate statistics queries.
type ExpenseRepository interface {
	Create(expense *domain.Expense) error
	FindByID(id uint) (*domain.Expense, error)
	FindByOwner(ownerID uint, categoryID *uint, offset, limit int) ([]domain.Expense, error)
	FindByCategoryAndOwner(categoryID, ownerID uint, offset, limit int) ([]domain.Expense, error)
	Update(expense *domain.Expense) error
	Delete(id uint) error
	CountByCategory(categoryID uint) (int64, error)
	DetachCategory(categoryID uint) error

	Totals(filter StatsFilter) (*domain.ExpenseTotals, error)
	CurrencyBreakdown(filter StatsFilter) ([]domain.CurrencyStats, error)
	CategoryBreakdown(filter StatsFilter) ([]domain.CategoryStats, error)
}
