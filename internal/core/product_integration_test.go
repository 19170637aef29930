package core_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"shopkeeper/internal/core"
	"shopkeeper/internal/migrate"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test to protect live database")
	}

	ctx := context.Background()
	if err := migrate.Up(ctx, dbURL); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE sale_items, sales, purchases, expenses,
		               employees, customers, suppliers, products, users CASCADE;
	`)
	if err != nil {
		t.Fatalf("clean test database: %v", err)
	}

	return pool
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProductCRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewProductService(pool)

	var created *core.Product

	t.Run("Create", func(t *testing.T) {
		var err error
		created, err = svc.Save(ctx, core.ProductInput{
			Name:              "Basmati Rice",
			Category:          "Grains",
			UnitType:          "kg",
			SellingPrice:      dec("120.00"),
			PurchasePrice:     dec("95.00"),
			LowStockThreshold: dec("10"),
			HasExpiry:         false,
		})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if created.ID == 0 {
			t.Error("expected assigned ID")
		}
		if !created.StockQuantity.IsZero() {
			t.Errorf("expected zero opening stock, got %s", created.StockQuantity)
		}
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := svc.Save(ctx, core.ProductInput{
			ID:                created.ID,
			Name:              "Basmati Rice Premium",
			Category:          "Grains",
			UnitType:          "kg",
			SellingPrice:      dec("135.00"),
			PurchasePrice:     dec("100.00"),
			LowStockThreshold: dec("10"),
		})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if updated.Name != "Basmati Rice Premium" {
			t.Errorf("expected updated name, got %q", updated.Name)
		}
		if !updated.SellingPrice.Equal(dec("135.00")) {
			t.Errorf("expected selling price 135.00, got %s", updated.SellingPrice)
		}
	})

	t.Run("Get", func(t *testing.T) {
		p, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if p.Name != "Basmati Rice Premium" {
			t.Errorf("expected updated name, got %q", p.Name)
		}
	})

	t.Run("SearchMatchesNameAndCategory", func(t *testing.T) {
		if _, err := svc.Save(ctx, core.ProductInput{
			Name: "Sunflower Oil", Category: "Cooking", UnitType: "ltr",
			SellingPrice: dec("180"), PurchasePrice: dec("160"), LowStockThreshold: dec("5"),
		}); err != nil {
			t.Fatalf("Save: %v", err)
		}

		byName, _, err := svc.List(ctx, core.ListQuery{Search: "basmati"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(byName) != 1 {
			t.Fatalf("expected 1 product matching name, got %d", len(byName))
		}

		byCategory, _, err := svc.List(ctx, core.ListQuery{Search: "cooking"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(byCategory) != 1 || byCategory[0].Name != "Sunflower Oil" {
			t.Fatalf("expected Sunflower Oil by category search, got %+v", byCategory)
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		for i := 0; i < core.PageSize+5; i++ {
			if _, err := svc.Save(ctx, core.ProductInput{
				Name:     fmt.Sprintf("Bulk Item %02d", i),
				Category: "Bulk", UnitType: "pcs",
				SellingPrice: dec("10"), PurchasePrice: dec("8"), LowStockThreshold: dec("1"),
			}); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}

		page1, pd, err := svc.List(ctx, core.ListQuery{Page: 1})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(page1) != core.PageSize {
			t.Errorf("expected full first page, got %d rows", len(page1))
		}
		if pd.CurrentPage != 1 || pd.TotalPages != 2 {
			t.Errorf("expected page 1 of 2, got %d of %d", pd.CurrentPage, pd.TotalPages)
		}

		_, pd2, err := svc.List(ctx, core.ListQuery{Page: 99})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if pd2.CurrentPage != 2 {
			t.Errorf("expected out-of-range page clamped to 2, got %d", pd2.CurrentPage)
		}
	})

	t.Run("DeleteHidesFromList", func(t *testing.T) {
		if err := svc.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := svc.Get(ctx, created.ID); err == nil {
			t.Error("expected deleted product to be gone")
		}
		if err := svc.Delete(ctx, created.ID); err == nil {
			t.Error("expected second delete to report not found")
		}
	})
}

func TestSaleStockMovements(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	products := core.NewProductService(pool)
	purchases := core.NewPurchaseService(pool)
	sales := core.NewSaleService(pool)

	p, err := products.Save(ctx, core.ProductInput{
		Name: "Sugar", Category: "Grocery", UnitType: "kg",
		SellingPrice: dec("50"), PurchasePrice: dec("42"), LowStockThreshold: dec("5"),
	})
	if err != nil {
		t.Fatalf("Save product: %v", err)
	}

	t.Run("PurchaseAddsStock", func(t *testing.T) {
		_, err := purchases.Save(ctx, core.PurchaseInput{
			ProductID: p.ID, Quantity: dec("100"), UnitCost: dec("40"),
			PurchaseDate: time.Now(),
		})
		if err != nil {
			t.Fatalf("Save purchase: %v", err)
		}

		got, err := products.Get(ctx, p.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !got.StockQuantity.Equal(dec("100")) {
			t.Errorf("expected stock 100, got %s", got.StockQuantity)
		}
		if !got.PurchasePrice.Equal(dec("40")) {
			t.Errorf("expected purchase price updated to 40, got %s", got.PurchasePrice)
		}
	})

	t.Run("SaleDecrementsStockAndSnapshotsCost", func(t *testing.T) {
		sale, err := sales.Save(ctx, core.SaleInput{
			SaleDate: time.Now(),
			Items: []core.SaleItemInput{
				{ProductID: p.ID, Quantity: dec("10"), UnitPrice: dec("50")},
			},
		})
		if err != nil {
			t.Fatalf("Save sale: %v", err)
		}
		if !sale.Total.Equal(dec("500")) {
			t.Errorf("expected total 500, got %s", sale.Total)
		}

		got, err := products.Get(ctx, p.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !got.StockQuantity.Equal(dec("90")) {
			t.Errorf("expected stock 90, got %s", got.StockQuantity)
		}

		listed, _, err := sales.List(ctx, core.ListQuery{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(listed) != 1 || len(listed[0].Items) != 1 {
			t.Fatalf("expected one sale with one item, got %+v", listed)
		}
		if !listed[0].Items[0].CostPrice.Equal(dec("40")) {
			t.Errorf("expected cost snapshot 40, got %s", listed[0].Items[0].CostPrice)
		}
	})

	t.Run("InsufficientStockRejected", func(t *testing.T) {
		_, err := sales.Save(ctx, core.SaleInput{
			SaleDate: time.Now(),
			Items: []core.SaleItemInput{
				{ProductID: p.ID, Quantity: dec("1000"), UnitPrice: dec("50")},
			},
		})
		if err == nil {
			t.Fatal("expected insufficient stock error")
		}

		got, _ := products.Get(ctx, p.ID)
		if !got.StockQuantity.Equal(dec("90")) {
			t.Errorf("expected stock unchanged at 90, got %s", got.StockQuantity)
		}
	})

	t.Run("DeleteSaleRestoresStock", func(t *testing.T) {
		listed, _, err := sales.List(ctx, core.ListQuery{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if err := sales.Delete(ctx, listed[0].ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		got, _ := products.Get(ctx, p.ID)
		if !got.StockQuantity.Equal(dec("100")) {
			t.Errorf("expected stock restored to 100, got %s", got.StockQuantity)
		}
	})
}

func TestDashboardStats(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	products := core.NewProductService(pool)
	purchases := core.NewPurchaseService(pool)
	sales := core.NewSaleService(pool)
	expenses := core.NewExpenseService(pool)
	reporting := core.NewReportingService(pool)

	now := time.Now()

	p, err := products.Save(ctx, core.ProductInput{
		Name: "Tea", Category: "Beverages", UnitType: "pcs",
		SellingPrice: dec("30"), PurchasePrice: dec("20"), LowStockThreshold: dec("5"),
	})
	if err != nil {
		t.Fatalf("Save product: %v", err)
	}
	if _, err := purchases.Save(ctx, core.PurchaseInput{
		ProductID: p.ID, Quantity: dec("50"), UnitCost: dec("20"), PurchaseDate: now,
	}); err != nil {
		t.Fatalf("Save purchase: %v", err)
	}
	if _, err := sales.Save(ctx, core.SaleInput{
		SaleDate: now,
		Items:    []core.SaleItemInput{{ProductID: p.ID, Quantity: dec("4"), UnitPrice: dec("30")}},
	}); err != nil {
		t.Fatalf("Save sale: %v", err)
	}
	if _, err := expenses.Save(ctx, core.ExpenseInput{
		Category: "Rent", Amount: dec("5000"), ExpenseDate: now,
	}); err != nil {
		t.Fatalf("Save expense: %v", err)
	}

	stats, err := reporting.DashboardStats(ctx, now)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if !stats.TodaySales.Equal(dec("120")) {
		t.Errorf("expected today sales 120, got %s", stats.TodaySales)
	}
	if !stats.MonthlyProfit.Equal(dec("40")) {
		t.Errorf("expected monthly profit 40, got %s", stats.MonthlyProfit)
	}
	if !stats.MonthlyExpenses.Equal(dec("5000")) {
		t.Errorf("expected monthly expenses 5000, got %s", stats.MonthlyExpenses)
	}
	if !stats.StockValue.Equal(dec("920")) {
		t.Errorf("expected stock value 920, got %s", stats.StockValue)
	}
	if len(stats.TopProducts) != 1 || stats.TopProducts[0].Name != "Tea" {
		t.Errorf("expected Tea as top product, got %+v", stats.TopProducts)
	}

	report, err := reporting.SalesReport(ctx, now.AddDate(0, 0, -7), now)
	if err != nil {
		t.Fatalf("SalesReport: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("expected one report row, got %d", len(report))
	}
	if !report[0].Sales.Equal(dec("120")) || report[0].NumSales != 1 {
		t.Errorf("unexpected report row %+v", report[0])
	}
}
