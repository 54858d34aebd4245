package usecase

import (
	"fmt"
	"sort"
	"time"

	authdomain "spendtrack-backend/internal/auth/domain"
	"spendtrack-backend/internal/auth/authz"
	"spendtrack-backend/internal/expense/domain"
	"spendtrack-backend/internal/expense/dto"
	"spendtrack-backend/internal/expense/repository"
	"spendtrack-backend/pkg/fuzzy"
	"spendtrack-backend/pkg/logger"
)

// searchScanLimit caps how many of the owner's expenses are loaded for a
// fuzzy search pass.
const searchScanLimit = 500

// expenseUsecase implements ExpenseUsecase
type expenseUsecase struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewExpenseUsecase creates a new instance of expenseUsecase
func NewExpenseUsecase(expenseRepo repository.ExpenseRepository, categoryRepo repository.CategoryRepository, log *logger.Logger) ExpenseUsecase {
	return &expenseUsecase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		log:          log.WithComponent("expense"),
	}
}

func (u *expenseUsecase) ListExpenses(user *authdomain.User, categoryID *uint, skip, limit int) ([]domain.Expense, error) {
	return u.expenseRepo.FindByOwner(user.ID, categoryID, skip, limit)
}

func (u *expenseUsecase) GetExpense(user *authdomain.User, id uint) (*domain.Expense, error) {
	expense, err := u.expenseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	if !authz.Owns(user, expense) {
		return nil, ErrNotOwner
	}
	return expense, nil
}

func (u *expenseUsecase) CreateExpense(user *authdomain.User, req *dto.ExpenseCreateRequest) (*domain.Expense, error) {
	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	expense := &domain.Expense{
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Date:        time.Now().UTC(),
		OwnerID:     user.ID,
		CategoryID:  req.CategoryID,
	}
	if err := u.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	u.log.Info().Uint("expense_id", expense.ID).Uint("owner_id", user.ID).Msg("expense created")
	return expense, nil
}

func (u *expenseUsecase) UpdateExpense(user *authdomain.User, id uint, req *dto.ExpenseUpdateRequest) (*domain.Expense, error) {
	expense, err := u.GetExpense(user, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		category, err := u.categoryRepo.FindByID(*req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		expense.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		expense.Name = *req.Name
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}

	if err := u.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (u *expenseUsecase) DeleteExpense(user *authdomain.User, id uint) error {
	if _, err := u.GetExpense(user, id); err != nil {
		return err
	}
	return u.expenseRepo.Delete(id)
}

func (u *expenseUsecase) Statistics(user *authdomain.User, query *dto.StatisticsQuery) (*dto.ExpenseStatistics, error) {
	filter := repository.StatsFilter{
		OwnerID:    user.ID,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
		CategoryID: query.CategoryID,
	}

	totals, err := u.expenseRepo.Totals(filter)
	if err != nil {
		return nil, err
	}
	currencies, err := u.expenseRepo.CurrencyBreakdown(filter)
	if err != nil {
		return nil, err
	}
	categories, err := u.expenseRepo.CategoryBreakdown(filter)
	if err != nil {
		return nil, err
	}

	return &dto.ExpenseStatistics{
		TotalAmount:    totals.TotalAmount,
		TotalExpenses:  totals.TotalExpenses,
		AverageExpense: totals.AverageExpense,
		DateRange: map[string]*time.Time{
			"start_date": query.StartDate,
			"end_date":   query.EndDate,
		},
		CurrencyBreakdown: currencies,
		CategoryBreakdown: categories,
		PeriodSummary:     periodSummary(query.StartDate, query.EndDate),
	}, nil
}

func (u *expenseUsecase) SearchExpenses(user *authdomain.User, query string, limit int) ([]domain.Expense, error) {
	expenses, err := u.expenseRepo.FindByOwner(user.ID, nil, 0, searchScanLimit)
	if err != nil {
		return nil, err
	}

	threshold := fuzzy.Threshold(query)
	type scored struct {
		expense domain.Expense
		score   float64
	}
	var matches []scored
	for _, expense := range expenses {
		if fuzzy.Match(query, expense.Name, threshold) || fuzzy.Match(query, expense.Description, threshold) {
			matches = append(matches, scored{
				expense: expense,
				score:   fuzzy.Score(query, expense.Name, expense.Description),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]domain.Expense, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.expense)
	}
	return results, nil
}

func (u *expenseUsecase) ListCategories(skip, limit int) ([]domain.Category, error) {
	return u.categoryRepo.FindAll(skip, limit)
}

func (u *expenseUsecase) ListCategoriesWithUsage(skip, limit int) ([]domain.CategoryUsage, error) {
	return u.categoryRepo.FindAllWithUsage(skip, limit)
}

func (u *expenseUsecase) GetCategory(id uint) (*domain.CategoryUsage, error) {
	usage, err := u.categoryRepo.FindByIDWithUsage(id)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		return nil, ErrCategoryNotFound
	}
	return usage, nil
}

func (u *expenseUsecase) CreateCategory(req *dto.CategoryCreateRequest) (*domain.Category, error) {
	existing, err := u.categoryRepo.FindByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameTaken
	}

	category := &domain.Category{Name: req.Name, Description: req.Description}
	if err := u.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *expenseUsecase) UpdateCategory(id uint, req *dto.CategoryUpdateRequest) (*domain.Category, error) {
	category, err := u.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil && *req.Name != category.Name {
		existing, err := u.categoryRepo.FindByName(*req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryNameTaken
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := u.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *expenseUsecase) DeleteCategory(id uint, force bool) error {
	category, err := u.categoryRepo.FindByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := u.expenseRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		if !force {
			return ErrCategoryInUse
		}
		// Force delete detaches the expenses instead of removing them.
		if err := u.expenseRepo.DetachCategory(id); err != nil {
			return err
		}
	}

	u.log.Info().Uint("category_id", id).Msg("category deleted")
	return u.categoryRepo.Delete(id)
}

func (u *expenseUsecase) ListCategoryExpenses(user *authdomain.User, categoryID uint, skip, limit int) ([]domain.Expense, error) {
	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return u.expenseRepo.FindByCategoryAndOwner(categoryID, user.ID, skip, limit)
}

func periodSummary(start, end *time.Time) map[string]string {
	switch {
	case start != nil && end != nil:
		days := int(end.Sub(*start).Hours() / 24)
		return map[string]string{
			"period_type":        fmt.Sprintf("Custom (%d days)", days),
			"period_description": fmt.Sprintf("From %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		}
	case start != nil:
		return map[string]string{
			"period_type":        "From date onwards",
			"period_description": fmt.Sprintf("From %s onwards", start.Format("2006-01-02")),
		}
	case end != nil:
		return map[string]string{
			"period_type":        "Up to date",
			"period_description": fmt.Sprintf("Up to %s", end.Format("2006-01-02")),
		}
	default:
		return map[string]string{
			"period_type":        "All time",
			"period_description": "All expenses",
		}
	}
}
