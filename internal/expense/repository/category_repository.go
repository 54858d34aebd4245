package repository

import (
	"errors"

	"spendtrack-backend/internal/expense/domain"

	"gorm.io/gorm"
)

// Default categories seeded on first run when SEED_CATEGORIES is enabled.
var defaultCategories = []domain.Category{
	{Name: "Groceries", Description: "Food and household supplies"},
	{Name: "Transport", Description: "Public transport, fuel and parking"},
	{Name: "Housing", Description: "Rent, mortgage and utilities"},
	{Name: "Entertainment", Description: "Movies, games and going out"},
	{Name: "Health", Description: "Medical expenses and pharmacy"},
	{Name: "Travel", Description: "Trips and vacations"},
	{Name: "Other", Description: "Everything else"},
}

// categoryRepository implements CategoryRepository on GORM
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of categoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

func (r *categoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(offset, limit int) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Offset(offset).Limit(limit).Order("id").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) FindAllWithUsage(offset, limit int) ([]domain.CategoryUsage, error) {
	var usage []domain.CategoryUsage
	err := r.db.Model(&domain.Category{}).
		Select("categories.id, categories.name, categories.description, COUNT(expenses.id) AS expense_count, COALESCE(SUM(expenses.amount), 0) AS total_amount").
		Joins("LEFT JOIN expenses ON expenses.category_id = categories.id").
		Group("categories.id, categories.name, categories.description").
		Order("categories.id").
		Offset(offset).Limit(limit).
		Scan(&usage).Error
	return usage, err
}

func (r *categoryRepository) FindByIDWithUsage(id uint) (*domain.CategoryUsage, error) {
	var usage domain.CategoryUsage
	err := r.db.Model(&domain.Category{}).
		Select("categories.id, categories.name, categories.description, COUNT(expenses.id) AS expense_count, COALESCE(SUM(expenses.amount), 0) AS total_amount").
		Joins("LEFT JOIN expenses ON expenses.category_id = categories.id").
		Where("categories.id = ?", id).
		Group("categories.id, categories.name, categories.description").
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	if usage.ID == 0 {
		return nil, nil
	}
	return &usage, nil
}

func (r *categoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&domain.Category{}, id).Error
}

// SeedDefaults inserts the default categories, skipping names that already
// exist.
func (r *categoryRepository) SeedDefaults() error {
	for _, category := range defaultCategories {
		existing, err := r.FindByName(category.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		c := category
		if err := r.db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
