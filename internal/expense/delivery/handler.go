package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	authdelivery "spendtrack-backend/internal/auth/delivery"
	"spendtrack-backend/internal/expense/dto"
	"spendtrack-backend/internal/expense/usecase"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler exposes the expense CRUD, statistics and search routes.
type ExpenseHandler struct {
	expenseUsecase usecase.ExpenseUsecase
}

func NewExpenseHandler(expenseUsecase usecase.ExpenseUsecase) *ExpenseHandler {
	return &ExpenseHandler{expenseUsecase: expenseUsecase}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id must be a positive integer"})
			return
		}
		v := uint(id)
		categoryID = &v
	}

	expenses, err := h.expenseUsecase.ListExpenses(user, categoryID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	expense, err := h.expenseUsecase.GetExpense(user, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	var req dto.ExpenseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseUsecase.CreateExpense(user, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseUsecase.UpdateExpense(user, id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.expenseUsecase.DeleteExpense(user, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExpenseHandler) Statistics(c *gin.Context) {
	user := authdelivery.CurrentUser(c)

	query := &dto.StatisticsQuery{}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS"})
			return
		}
		query.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS"})
			return
		}
		query.EndDate = &t
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id must be a positive integer"})
			return
		}
		v := uint(id)
		query.CategoryID = &v
	}

	stats, err := h.expenseUsecase.Statistics(user, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ExpenseHandler) Search(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	expenses, err := h.expenseUsecase.SearchExpenses(user, query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrExpenseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pagination reads skip/limit query params with the 0/100 defaults and a
// 1000 cap.
func pagination(c *gin.Context) (int, int, bool) {
	skip := 0
	if raw := c.Query("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
			return 0, 0, false
		}
		skip = parsed
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
			return 0, 0, false
		}
		limit = parsed
	}

	return skip, limit, true
}

func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
