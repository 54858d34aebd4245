package usecase

import (
	"errors"

	authdomain "spendtrack-backend/internal/auth/domain"
	"spendtrack-backend/internal/expense/domain"
	"spendtrack-backend/internal/expense/dto"
)

var (
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrNotOwner          = errors.New("you can only access your own expenses")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category with this name already exists")
	ErrCategoryInUse     = errors.New("category has associated expenses")
)

// ExpenseUsecase orchestrates expense and category CRUD, ownership
// enforcement, statistics aggregation and fuzzy search.
type ExpenseUsecase interface {
	ListExpenses(user *authdomain.User, categoryID *uint, skip, limit int) ([]domain.Expense, error)
	GetExpense(user *authdomain.User, id uint) (*domain.Expense, error)
	CreateExpense(user *authdomain.User, req *dto.ExpenseCreateRequest) (*domain.Expense, error)
	UpdateExpense(user *authdomain.User, id uint, req *dto.ExpenseUpdateRequest) (*domain.Expense, error)
	DeleteExpense(user *authdomain.User, id uint) error
	Statistics(user *authdomain.User, query *dto.StatisticsQuery) (*dto.ExpenseStatistics, error)
	SearchExpenses(user *authdomain.User, query string, limit int) ([]domain.Expense, error)

	ListCategories(skip, limit int) ([]domain.Category, error)
	ListCategoriesWithUsage(skip, limit int) ([]domain.CategoryUsage, error)
	GetCategory(id uint) (*domain.CategoryUsage, error)
	CreateCategory(req *dto.CategoryCreateRequest) (*domain.Category, error)
	UpdateCategory(id uint, req *dto.CategoryUpdateRequest) (*domain.Category, error)
	DeleteCategory(id uint, force bool) error
	ListCategoryExpenses(user *authdomain.User, categoryID uint, skip, limit int) ([]domain.Expense, error)
}
