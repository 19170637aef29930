package app

import (
	"context"
	"time"
)

// ApplicationService is the single interface all UI adapters (Web, terminal)
// call. It decouples presentation from business logic and owns display
// formatting of money values so every adapter renders the same strings.
type ApplicationService interface {
	// Login verifies credentials and returns the session view for the user.
	Login(ctx context.Context, username, password string) (*UserSession, error)

	// Session returns the session view for an already authenticated user.
	Session(ctx context.Context, userID int) (*UserSession, error)

	// GetDashboardStats aggregates the dashboard widgets.
	GetDashboardStats(ctx context.Context) (*DashboardStatsResult, error)

	// GetReport returns the per-day sales report between two dates inclusive.
	GetReport(ctx context.Context, from, to time.Time) (*ReportResult, error)

	ListProducts(ctx context.Context, req ListRequest) (*ProductListResult, error)
	SaveProduct(ctx context.Context, req SaveProductRequest) (*MessageResult, error)
	DeleteProduct(ctx context.Context, id int) (*MessageResult, error)

	ListSuppliers(ctx context.Context, req ListRequest) (*SupplierListResult, error)
	SaveSupplier(ctx context.Context, req SaveSupplierRequest) (*MessageResult, error)
	DeleteSupplier(ctx context.Context, id int) (*MessageResult, error)

	ListCustomers(ctx context.Context, req ListRequest) (*CustomerListResult, error)
	SaveCustomer(ctx context.Context, req SaveCustomerRequest) (*MessageResult, error)
	DeleteCustomer(ctx context.Context, id int) (*MessageResult, error)

	ListEmployees(ctx context.Context, req ListRequest) (*EmployeeListResult, error)
	SaveEmployee(ctx context.Context, req SaveEmployeeRequest) (*MessageResult, error)
	DeleteEmployee(ctx context.Context, id int) (*MessageResult, error)

	ListExpenses(ctx context.Context, req ListRequest) (*ExpenseListResult, error)
	SaveExpense(ctx context.Context, req SaveExpenseRequest) (*MessageResult, error)
	DeleteExpense(ctx context.Context, id int) (*MessageResult, error)

	ListPurchases(ctx context.Context, req ListRequest) (*PurchaseListResult, error)
	SavePurchase(ctx context.Context, req SavePurchaseRequest) (*MessageResult, error)
	DeletePurchase(ctx context.Context, id int) (*MessageResult, error)

	ListSales(ctx context.Context, req ListRequest) (*SaleListResult, error)
	SaveSale(ctx context.Context, req SaveSaleRequest) (*MessageResult, error)
	DeleteSale(ctx context.Context, id int) (*MessageResult, error)

	GetSettings(ctx context.Context) (*SettingsResult, error)
	SaveSettings(ctx context.Context, req SaveSettingsRequest) (*MessageResult, error)
}
