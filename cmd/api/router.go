package api

import (
	"net/http"

	"spendtrack-backend/internal/auth/delivery"
	authUsecase "spendtrack-backend/internal/auth/usecase"
	expenseDelivery "spendtrack-backend/internal/expense/delivery"
	expenseUsecase "spendtrack-backend/internal/expense/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, expenseUc expenseUsecase.ExpenseUsecase) {
	authHandler := delivery.NewAuthHandler(authUc)
	expenseHandler := expenseDelivery.NewExpenseHandler(expenseUc)
	categoryHandler := expenseDelivery.NewCategoryHandler(expenseUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/help", authHandler.Help)
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/google", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
			auth.GET("/token-info", delivery.AuthMiddleware(authUc), authHandler.TokenInfo)
			auth.POST("/logout", delivery.AuthMiddleware(authUc), authHandler.Logout)
		}

		// Expense routes (protected)
		expenses := api.Group("/expenses")
		expenses.Use(delivery.AuthMiddleware(authUc), delivery.RequireActive())
		{
			expenses.GET("", expenseHandler.List)
			expenses.GET("/statistics", expenseHandler.Statistics)
			expenses.GET("/search", expenseHandler.Search)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.POST("", expenseHandler.Create)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(delivery.AuthMiddleware(authUc), delivery.RequireActive())
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.GET("/:id/expenses", categoryHandler.ListExpenses)
			categories.POST("", categoryHandler.Create)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}
	}
}
