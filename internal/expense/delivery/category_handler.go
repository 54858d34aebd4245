package delivery

import (
	"errors"
	"net/http"

	authdelivery "spendtrack-backend/internal/auth/delivery"
	"spendtrack-backend/internal/expense/dto"
	"spendtrack-backend/internal/expense/usecase"

	"github.com/gin-gonic/gin"
)

// CategoryHandler exposes the category routes.
type CategoryHandler struct {
	expenseUsecase usecase.ExpenseUsecase
}

func NewCategoryHandler(expenseUsecase usecase.ExpenseUsecase) *CategoryHandler {
	return &CategoryHandler{expenseUsecase: expenseUsecase}
}

func (h *CategoryHandler) List(c *gin.Context) {
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	if c.Query("include_stats") == "true" {
		usage, err := h.expenseUsecase.ListCategoriesWithUsage(skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, usage)
		return
	}

	categories, err := h.expenseUsecase.ListCategories(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	usage, err := h.expenseUsecase.GetCategory(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.expenseUsecase.CreateCategory(&req)
	if err != nil {
		if errors.Is(err, usecase.ErrCategoryNameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.expenseUsecase.UpdateCategory(id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	force := c.Query("force") == "true"
	if err := h.expenseUsecase.DeleteCategory(id, force); err != nil {
		if errors.Is(err, usecase.ErrCategoryInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete category with associated expenses, use force=true to detach them"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) ListExpenses(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	expenses, err := h.expenseUsecase.ListCategoryExpenses(user, id, skip, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *CategoryHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrCategoryNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
