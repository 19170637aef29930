// Command seed-demo loads a small demo dataset: an admin and a staff
// user, a handful of products with suppliers and stock, and a few days
// of sales so the dashboard has something to show.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"shopkeeper/internal/config"
	"shopkeeper/internal/core"
	"shopkeeper/internal/db"
	"shopkeeper/internal/migrate"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	users := core.NewUserService(pool)
	products := core.NewProductService(pool)
	suppliers := core.NewSupplierService(pool)
	customers := core.NewCustomerService(pool)
	employees := core.NewEmployeeService(pool)
	expenses := core.NewExpenseService(pool)
	purchases := core.NewPurchaseService(pool)
	sales := core.NewSaleService(pool)
	settings := core.NewSettingsService(pool)

	if _, err := users.Create(ctx, "admin", "admin@example.com", "admin123", "admin"); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	if _, err := users.Create(ctx, "staff", "staff@example.com", "staff123", "staff"); err != nil {
		log.Fatalf("create staff: %v", err)
	}

	if err := settings.Save(ctx, core.Settings{
		StoreName:       "Demo General Store",
		CurrencySymbol:  "Rs. ",
		LowStockDefault: "5",
	}); err != nil {
		log.Fatalf("save settings: %v", err)
	}

	supplier, err := suppliers.Save(ctx, core.SupplierInput{
		Name:          "Lakeside Agro Traders",
		ContactPerson: "N. Perera",
		Phone:         "077-1234567",
		Address:       "12 Lake Rd, Kandy",
	})
	if err != nil {
		log.Fatalf("save supplier: %v", err)
	}

	customer, err := customers.Save(ctx, core.CustomerInput{
		Name:    "S. Fernando",
		Phone:   "071-7654321",
		Address: "8 Temple Lane",
	})
	if err != nil {
		log.Fatalf("save customer: %v", err)
	}

	if _, err := employees.Save(ctx, core.EmployeeInput{
		Name:          "K. Silva",
		Phone:         "070-1112223",
		Role:          "Cashier",
		MonthlySalary: dec("45000"),
	}); err != nil {
		log.Fatalf("save employee: %v", err)
	}

	type demoProduct struct {
		name, category, unit string
		selling, cost        decimal.Decimal
		threshold, stock     decimal.Decimal
	}
	demo := []demoProduct{
		{"Ceylon Tea 400g", "Grocery", "pack", dec("950"), dec("720"), dec("10"), dec("40")},
		{"White Sugar", "Grocery", "kg", dec("260"), dec("215"), dec("20"), dec("120")},
		{"Basmati Rice 5kg", "Grocery", "pack", dec("3200"), dec("2650"), dec("5"), dec("18")},
		{"Fresh Milk 1L", "Dairy", "ltr", dec("480"), dec("410"), dec("12"), dec("9")},
		{"Laundry Soap", "Household", "pcs", dec("160"), dec("110"), dec("15"), dec("60")},
	}

	for _, p := range demo {
		product, err := products.Save(ctx, core.ProductInput{
			Name:              p.name,
			Category:          p.category,
			UnitType:          p.unit,
			SellingPrice:      p.selling,
			PurchasePrice:     p.cost,
			LowStockThreshold: p.threshold,
		})
		if err != nil {
			log.Fatalf("save product %s: %v", p.name, err)
		}

		if _, err := purchases.Save(ctx, core.PurchaseInput{
			SupplierID:   &supplier.ID,
			ProductID:    product.ID,
			Quantity:     p.stock,
			UnitCost:     p.cost,
			PurchaseDate: time.Now().AddDate(0, 0, -7),
		}); err != nil {
			log.Fatalf("receive stock for %s: %v", p.name, err)
		}

		if _, err := sales.Save(ctx, core.SaleInput{
			CustomerID: &customer.ID,
			SaleDate:   time.Now().AddDate(0, 0, -1),
			Items: []core.SaleItemInput{
				{ProductID: product.ID, Quantity: dec("2"), UnitPrice: p.selling},
			},
		}); err != nil {
			log.Fatalf("record sale for %s: %v", p.name, err)
		}
	}

	if _, err := expenses.Save(ctx, core.ExpenseInput{
		Category:    "Utilities",
		Description: "Electricity bill",
		Amount:      dec("8200"),
		ExpenseDate: time.Now().AddDate(0, 0, -3),
	}); err != nil {
		log.Fatalf("save expense: %v", err)
	}

	log.Println("demo data loaded: log in with admin/admin123 or staff/staff123")
}
