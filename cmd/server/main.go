package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	webAdapter "shopkeeper/internal/adapters/web"
	"shopkeeper/internal/app"
	"shopkeeper/internal/config"
	"shopkeeper/internal/core"
	"shopkeeper/internal/db"
	"shopkeeper/internal/migrate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	svc := app.NewService(app.Services{
		Users:     core.NewUserService(pool),
		Products:  core.NewProductService(pool),
		Suppliers: core.NewSupplierService(pool),
		Customers: core.NewCustomerService(pool),
		Employees: core.NewEmployeeService(pool),
		Expenses:  core.NewExpenseService(pool),
		Purchases: core.NewPurchaseService(pool),
		Sales:     core.NewSaleService(pool),
		Reporting: core.NewReportingService(pool),
		Settings:  core.NewSettingsService(pool),
	})

	handler := webAdapter.NewHandler(svc, logger, cfg.AllowedOrigins, cfg.JWTSecret)

	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
