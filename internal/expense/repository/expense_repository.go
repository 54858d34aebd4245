package repository

import (
	"errors"

	"spendtrack-backend/internal/expense/domain"

	"gorm.io/gorm"
)

// expenseRepository implements ExpenseRepository on GORM
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new instance of expenseRepository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

func (r *expenseRepository) Create(expense *domain.Expense) error {
	return r.db.Create(expense).Error
}

func (r *expenseRepository) FindByID(id uint) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.Where("id = ?", id).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) FindByOwner(ownerID uint, categoryID *uint, offset, limit int) ([]domain.Expense, error) {
	var expenses []domain.Expense
	query := r.db.Where("owner_id = ?", ownerID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	err := query.Offset(offset).Limit(limit).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) FindByCategoryAndOwner(categoryID, ownerID uint, offset, limit int) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := r.db.Where("category_id = ? AND owner_id = ?", categoryID, ownerID).
		Offset(offset).Limit(limit).Order("date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Update(expense *domain.Expense) error {
	return r.db.Save(expense).Error
}

func (r *expenseRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Expense{}, id).Error
}

func (r *expenseRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Expense{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *expenseRepository) DetachCategory(categoryID uint) error {
	return r.db.Model(&domain.Expense{}).Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}

func (r *expenseRepository) Totals(filter StatsFilter) (*domain.ExpenseTotals, error) {
	var totals domain.ExpenseTotals
	err := r.filtered(filter).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(id) AS total_expenses, COALESCE(AVG(amount), 0) AS average_expense").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *expenseRepository) CurrencyBreakdown(filter StatsFilter) ([]domain.CurrencyStats, error) {
	var stats []domain.CurrencyStats
	err := r.filtered(filter).
		Select("currency, COALESCE(SUM(amount), 0) AS total_amount, COUNT(id) AS expense_count, COALESCE(AVG(amount), 0) AS average_amount").
		Group("currency").
		Scan(&stats).Error
	return stats, err
}

func (r *expenseRepository) CategoryBreakdown(filter StatsFilter) ([]domain.CategoryStats, error) {
	var stats []domain.CategoryStats
	err := r.filtered(filter).
		Select("expenses.category_id, categories.name AS category_name, COALESCE(SUM(expenses.amount), 0) AS total_amount, COUNT(expenses.id) AS expense_count, COALESCE(AVG(expenses.amount), 0) AS average_amount").
		Joins("JOIN categories ON expenses.category_id = categories.id").
		Group("expenses.category_id, categories.name").
		Scan(&stats).Error
	return stats, err
}

func (r *expenseRepository) filtered(filter StatsFilter) *gorm.DB {
	query := r.db.Model(&domain.Expense{}).Where("expenses.owner_id = ?", filter.OwnerID)
	if filter.StartDate != nil {
		query = query.Where("expenses.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("expenses.date <= ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		query = query.Where("expenses.category_id = ?", *filter.CategoryID)
	}
	return query
}
