package main

import (
	"time"

	api "spendtrack-backend/cmd/api"
	authdomain "spendtrack-backend/internal/auth/domain"
	"spendtrack-backend/internal/auth/oauth"
	"spendtrack-backend/internal/auth/password"
	authRepo "spendtrack-backend/internal/auth/repository"
	"spendtrack-backend/internal/auth/token"
	authUsecase "spendtrack-backend/internal/auth/usecase"
	expensedomain "spendtrack-backend/internal/expense/domain"
	expenseRepo "spendtrack-backend/internal/expense/repository"
	expenseUsecase "spendtrack-backend/internal/expense/usecase"
	"spendtrack-backend/pkg/config"
	"spendtrack-backend/pkg/database"
	"spendtrack-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &expensedomain.Category{}, &expensedomain.Expense{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	categoryRepository := expenseRepo.NewCategoryRepository(db)
	expenseRepository := expenseRepo.NewExpenseRepository(db)

	if cfg.SeedCategories {
		if err := categoryRepository.SeedDefaults(); err != nil {
			log.Fatal().Err(err).Msg("failed to seed default categories")
		}
		log.Info().Msg("default categories seeded")
	}

	// Auth components
	hasher := password.NewHasher(cfg.BcryptCost)
	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry, log)

	// Google OAuth is optional; without credentials the OAuth endpoints
	// report that the provider is not configured.
	var google *oauth.GoogleClient
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google, err = oauth.NewGoogleClient(&oauth.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
		}, 10*time.Minute, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Google OAuth client")
		}
	} else {
		log.Warn().Msg("Google OAuth credentials not configured, OAuth login disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, hasher, codec, google, log)
	expenseUsecaseInstance := expenseUsecase.NewExpenseUsecase(expenseRepository, categoryRepository, log)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, expenseUsecaseInstance, cfg)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
