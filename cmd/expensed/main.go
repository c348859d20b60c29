package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/handlers"
	"expensetracker/internal/middleware"
	"expensetracker/internal/repositories"
	"expensetracker/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sqlDB, err := db.DB.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrationsIfEnabled(sqlDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	expenseRepo := repositories.NewExpenseRepository(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)

	metrics := services.NewPrometheusMetrics()
	expenseService := services.NewExpenseService(expenseRepo, logger, metrics)
	sessionService := services.NewSessionService(userRepo, cfg.Session, logger)

	expenseHandler := handlers.NewExpenseHandler(expenseService)
	categoryHandler := handlers.NewCategoryHandler(expenseService)
	summaryHandler := handlers.NewSummaryHandler(expenseService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.RequireAuth(sessionService))

	api.POST("/expenses", expenseHandler.CreateExpense)
	api.GET("/expenses", expenseHandler.ListExpenses)
	api.PATCH("/expenses/edit", expenseHandler.EditExpense)
	api.DELETE("/expenses", expenseHandler.DeleteExpense)

	api.GET("/categories", categoryHandler.ListCategories)
	api.POST("/categories/rename", categoryHandler.RenameCategory)
	api.POST("/categories/delete", categoryHandler.DeleteCategory)

	api.GET("/summary/total", summaryHandler.GetTotal)
	api.GET("/summary/breakdown", summaryHandler.GetBreakdown)
	api.GET("/summary/series", summaryHandler.GetSeries)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(expenseRepo)
		api.POST("/dev/generate-test-data", devHandler.GenerateTestData)
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
