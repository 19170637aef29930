package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shopkeeper/internal/core"
	"shopkeeper/internal/money"
)

type appService struct {
	users     core.UserService
	products  core.ProductService
	suppliers core.SupplierService
	customers core.CustomerService
	employees core.EmployeeService
	expenses  core.ExpenseService
	purchases core.PurchaseService
	sales     core.SaleService
	reporting core.ReportingService
	settings  core.SettingsService
}

// Services bundles the core services the application layer composes.
type Services struct {
	Users     core.UserService
	Products  core.ProductService
	Suppliers core.SupplierService
	Customers core.CustomerService
	Employees core.EmployeeService
	Expenses  core.ExpenseService
	Purchases core.PurchaseService
	Sales     core.SaleService
	Reporting core.ReportingService
	Settings  core.SettingsService
}

// NewService constructs the ApplicationService over the core services.
func NewService(s Services) ApplicationService {
	return &appService{
		users:     s.Users,
		products:  s.Products,
		suppliers: s.Suppliers,
		customers: s.Customers,
		employees: s.Employees,
		expenses:  s.Expenses,
		purchases: s.Purchases,
		sales:     s.Sales,
		reporting: s.Reporting,
		settings:  s.Settings,
	}
}

const dateLayout = "2006-01-02"

// currency returns the configured currency symbol for display formatting.
func (a *appService) currency(ctx context.Context) (string, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.CurrencySymbol, nil
}

func sessionFor(u *core.User) *UserSession {
	caps := []string{CapManageRecords}
	if u.Role == core.RoleAdmin {
		caps = append(caps, CapDeleteRecords)
	}
	return &UserSession{UserID: u.ID, Username: u.Username, Role: u.Role, Caps: caps}
}

func (a *appService) Login(ctx context.Context, username, password string) (*UserSession, error) {
	u, err := a.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return sessionFor(u), nil
}

func (a *appService) Session(ctx context.Context, userID int) (*UserSession, error) {
	u, err := a.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sessionFor(u), nil
}

// ── Dashboard and reports ───────────────────────────────────────────────────

func (a *appService) GetDashboardStats(ctx context.Context) (*DashboardStatsResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := a.reporting.DashboardStats(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	result := &DashboardStatsResult{
		TodaySales:      money.Format(symbol, stats.TodaySales),
		MonthlySales:    money.Format(symbol, stats.MonthlySales),
		MonthlyProfit:   money.Format(symbol, stats.MonthlyProfit),
		MonthlyExpenses: money.Format(symbol, stats.MonthlyExpenses),
		StockValue:      money.Format(symbol, stats.StockValue),
		LowStockCount:   stats.LowStockCount,
	}
	for _, tp := range stats.TopProducts {
		result.TopProducts = append(result.TopProducts, TopProductView{
			Name:          tp.Name,
			TotalQuantity: tp.UnitsSold.String(),
		})
	}
	for _, lp := range stats.LowStock {
		result.LowStockProducts = append(result.LowStockProducts, LowStockView{
			Name:          lp.Name,
			StockQuantity: lp.StockQuantity.String(),
			UnitType:      lp.UnitType,
		})
	}
	return result, nil
}

func (a *appService) GetReport(ctx context.Context, from, to time.Time) (*ReportResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := a.reporting.SalesReport(ctx, from, to)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{}
	totalSales, totalProfit := decimal.Zero, decimal.Zero
	for _, r := range rows {
		result.Rows = append(result.Rows, ReportRowView{
			Date:      r.Date.Format(dateLayout),
			Sales:     r.Sales.String(),
			Profit:    r.Profit.String(),
			NumSales:  r.NumSales,
			SalesFmt:  money.Format(symbol, r.Sales),
			ProfitFmt: money.Format(symbol, r.Profit),
		})
		totalSales = totalSales.Add(r.Sales)
		totalProfit = totalProfit.Add(r.Profit)
	}
	result.TotalSalesFmt = money.Format(symbol, totalSales)
	result.TotalProfitFmt = money.Format(symbol, totalProfit)
	return result, nil
}

// ── Products ────────────────────────────────────────────────────────────────

func (a *appService) ListProducts(ctx context.Context, req ListRequest) (*ProductListResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	products, pd, err := a.products.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}

	result := &ProductListResult{Products: []ProductView{}, Pagination: pd}
	for _, p := range products {
		result.Products = append(result.Products, ProductView{
			ID:                  p.ID,
			Name:                p.Name,
			Category:            p.Category,
			UnitType:            p.UnitType,
			StockQuantity:       p.StockQuantity.String(),
			StockValueFormatted: money.Format(symbol, p.StockQuantity.Mul(p.PurchasePrice)),
			SellingPrice:        p.SellingPrice.String(),
			SellingPriceFmt:     money.Format(symbol, p.SellingPrice),
			LowStockThreshold:   p.LowStockThreshold.String(),
			HasExpiry:           boolFlag(p.HasExpiry),
		})
	}
	return result, nil
}

func (a *appService) SaveProduct(ctx context.Context, req SaveProductRequest) (*MessageResult, error) {
	_, err := a.products.Save(ctx, core.ProductInput{
		ID:                req.ID,
		Name:              req.Name,
		Category:          req.Category,
		UnitType:          req.UnitType,
		SellingPrice:      req.SellingPrice,
		LowStockThreshold: req.LowStockThreshold,
		HasExpiry:         req.HasExpiry,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Product saved."}, nil
}

func (a *appService) DeleteProduct(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.products.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Product deleted."}, nil
}

// ── Suppliers ───────────────────────────────────────────────────────────────

func (a *appService) ListSuppliers(ctx context.Context, req ListRequest) (*SupplierListResult, error) {
	suppliers, pd, err := a.suppliers.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}
	result := &SupplierListResult{Suppliers: []SupplierView{}, Pagination: pd}
	for _, v := range suppliers {
		result.Suppliers = append(result.Suppliers, SupplierView{
			ID: v.ID, Name: v.Name, ContactPerson: v.ContactPerson,
			Phone: v.Phone, Address: v.Address,
		})
	}
	return result, nil
}

func (a *appService) SaveSupplier(ctx context.Context, req SaveSupplierRequest) (*MessageResult, error) {
	_, err := a.suppliers.Save(ctx, core.SupplierInput{
		ID: req.ID, Name: req.Name, ContactPerson: req.ContactPerson,
		Phone: req.Phone, Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Supplier saved."}, nil
}

func (a *appService) DeleteSupplier(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.suppliers.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Supplier deleted."}, nil
}

// ── Customers ───────────────────────────────────────────────────────────────

func (a *appService) ListCustomers(ctx context.Context, req ListRequest) (*CustomerListResult, error) {
	customers, pd, err := a.customers.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}
	result := &CustomerListResult{Customers: []CustomerView{}, Pagination: pd}
	for _, c := range customers {
		result.Customers = append(result.Customers, CustomerView{
			ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address,
		})
	}
	return result, nil
}

func (a *appService) SaveCustomer(ctx context.Context, req SaveCustomerRequest) (*MessageResult, error) {
	_, err := a.customers.Save(ctx, core.CustomerInput{
		ID: req.ID, Name: req.Name, Phone: req.Phone, Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Customer saved."}, nil
}

func (a *appService) DeleteCustomer(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.customers.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Customer deleted."}, nil
}

// ── Employees ───────────────────────────────────────────────────────────────

func (a *appService) ListEmployees(ctx context.Context, req ListRequest) (*EmployeeListResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	employees, pd, err := a.employees.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}
	result := &EmployeeListResult{Employees: []EmployeeView{}, Pagination: pd}
	for _, e := range employees {
		result.Employees = append(result.Employees, EmployeeView{
			ID: e.ID, Name: e.Name, Phone: e.Phone, Role: e.Role,
			MonthlySalary:    e.MonthlySalary.String(),
			MonthlySalaryFmt: money.Format(symbol, e.MonthlySalary),
		})
	}
	return result, nil
}

func (a *appService) SaveEmployee(ctx context.Context, req SaveEmployeeRequest) (*MessageResult, error) {
	_, err := a.employees.Save(ctx, core.EmployeeInput{
		ID: req.ID, Name: req.Name, Phone: req.Phone, Role: req.Role,
		MonthlySalary: req.MonthlySalary,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Employee saved."}, nil
}

func (a *appService) DeleteEmployee(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.employees.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Employee deleted."}, nil
}

// ── Expenses ────────────────────────────────────────────────────────────────

func (a *appService) ListExpenses(ctx context.Context, req ListRequest) (*ExpenseListResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	expenses, pd, err := a.expenses.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}
	result := &ExpenseListResult{Expenses: []ExpenseView{}, Pagination: pd}
	for _, e := range expenses {
		result.Expenses = append(result.Expenses, ExpenseView{
			ID: e.ID, Category: e.Category, Description: e.Description,
			Amount:      e.Amount.String(),
			AmountFmt:   money.Format(symbol, e.Amount),
			ExpenseDate: e.ExpenseDate.Format(dateLayout),
		})
	}
	return result, nil
}

func (a *appService) SaveExpense(ctx context.Context, req SaveExpenseRequest) (*MessageResult, error) {
	_, err := a.expenses.Save(ctx, core.ExpenseInput{
		ID: req.ID, Category: req.Category, Description: req.Description,
		Amount: req.Amount, ExpenseDate: req.ExpenseDate,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Expense saved."}, nil
}

func (a *appService) DeleteExpense(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.expenses.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Expense deleted."}, nil
}

// ── Purchases ───────────────────────────────────────────────────────────────

func (a *appService) ListPurchases(ctx context.Context, req ListRequest) (*PurchaseListResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	purchases, pd, err := a.purchases.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}
	result := &PurchaseListResult{Purchases: []PurchaseView{}, Pagination: pd}
	for _, p := range purchases {
		view := PurchaseView{
			ID:           p.ID,
			SupplierName: p.SupplierName,
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			Quantity:     p.Quantity.String(),
			UnitCost:     p.UnitCost.String(),
			UnitCostFmt:  money.Format(symbol, p.UnitCost),
			TotalFmt:     money.Format(symbol, p.Total),
			PurchaseDate: p.PurchaseDate.Format(dateLayout),
		}
		if p.SupplierID != nil {
			view.SupplierID = *p.SupplierID
		}
		result.Purchases = append(result.Purchases, view)
	}
	return result, nil
}

func (a *appService) SavePurchase(ctx context.Context, req SavePurchaseRequest) (*MessageResult, error) {
	_, err := a.purchases.Save(ctx, core.PurchaseInput{
		ID: req.ID, SupplierID: req.SupplierID, ProductID: req.ProductID,
		Quantity: req.Quantity, UnitCost: req.UnitCost, PurchaseDate: req.PurchaseDate,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Purchase saved."}, nil
}

func (a *appService) DeletePurchase(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.purchases.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Purchase deleted."}, nil
}

// ── Sales ───────────────────────────────────────────────────────────────────

func (a *appService) ListSales(ctx context.Context, req ListRequest) (*SaleListResult, error) {
	symbol, err := a.currency(ctx)
	if err != nil {
		return nil, err
	}
	sales, pd, err := a.sales.List(ctx, core.ListQuery{Page: req.Page, Search: req.Search})
	if err != nil {
		return nil, err
	}
	result := &SaleListResult{Sales: []SaleView{}, Pagination: pd}
	for _, sa := range sales {
		view := SaleView{
			ID:           sa.ID,
			CustomerName: sa.CustomerName,
			SaleDate:     sa.SaleDate.Format(dateLayout),
			Total:        sa.Total.String(),
			TotalFmt:     money.Format(symbol, sa.Total),
			Items:        []SaleItemView{},
		}
		if sa.CustomerID != nil {
			view.CustomerID = *sa.CustomerID
		}
		for _, it := range sa.Items {
			view.Items = append(view.Items, SaleItemView{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity.String(),
				UnitPrice:   it.UnitPrice.String(),
			})
		}
		result.Sales = append(result.Sales, view)
	}
	return result, nil
}

func (a *appService) SaveSale(ctx context.Context, req SaveSaleRequest) (*MessageResult, error) {
	input := core.SaleInput{
		ID: req.ID, CustomerID: req.CustomerID, SaleDate: req.SaleDate,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, core.SaleItemInput{
			ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice,
		})
	}
	if _, err := a.sales.Save(ctx, input); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Sale saved."}, nil
}

func (a *appService) DeleteSale(ctx context.Context, id int) (*MessageResult, error) {
	if err := a.sales.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Sale deleted."}, nil
}

// ── Settings ────────────────────────────────────────────────────────────────

func (a *appService) GetSettings(ctx context.Context) (*SettingsResult, error) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsResult{
		StoreName:       settings.StoreName,
		CurrencySymbol:  settings.CurrencySymbol,
		LowStockDefault: settings.LowStockDefault,
	}, nil
}

func (a *appService) SaveSettings(ctx context.Context, req SaveSettingsRequest) (*MessageResult, error) {
	if req.StoreName == "" {
		return nil, fmt.Errorf("store name is required")
	}
	err := a.settings.Save(ctx, core.Settings{
		StoreName:       req.StoreName,
		CurrencySymbol:  req.CurrencySymbol,
		LowStockDefault: req.LowStockDefault,
	})
	if err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Settings saved."}, nil
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
