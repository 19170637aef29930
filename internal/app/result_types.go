package app

import "shopkeeper/internal/core"

// UserSession is the authenticated identity plus the capabilities the
// UI uses to show or hide controls. Deletion requires the admin role.
type UserSession struct {
	UserID   int      `json:"user_id"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Caps     []string `json:"caps"`
}

// CanDelete reports whether the session may delete records.
func (s *UserSession) CanDelete() bool {
	for _, c := range s.Caps {
		if c == CapDeleteRecords {
			return true
		}
	}
	return false
}

// Capabilities granted through UserSession.Caps.
const (
	CapManageRecords = "manage_records"
	CapDeleteRecords = "delete_records"
)

// MessageResult is returned by every save and delete operation.
type MessageResult struct {
	Message string `json:"message"`
}

// ── List views ──────────────────────────────────────────────────────────────
// Field names below are the wire contract consumed by the admin screens.
// Money fields come in two flavors: a raw value the edit form is populated
// from and a *_formatted display string.

type ProductView struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	UnitType            string `json:"unit_type"`
	StockQuantity       string `json:"stock_quantity"`
	StockValueFormatted string `json:"stock_value_formatted"`
	SellingPrice        string `json:"selling_price"`
	SellingPriceFmt     string `json:"selling_price_formatted"`
	LowStockThreshold   string `json:"low_stock_threshold"`
	HasExpiry           int    `json:"has_expiry"`
}

type ProductListResult struct {
	Products   []ProductView       `json:"products"`
	Pagination core.PageDescriptor `json:"pagination"`
}

type SupplierView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type SupplierListResult struct {
	Suppliers  []SupplierView      `json:"suppliers"`
	Pagination core.PageDescriptor `json:"pagination"`
}

type CustomerView struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CustomerListResult struct {
	Customers  []CustomerView      `json:"customers"`
	Pagination core.PageDescriptor `json:"pagination"`
}

type EmployeeView struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	MonthlySalary    string `json:"monthly_salary"`
	MonthlySalaryFmt string `json:"monthly_salary_formatted"`
}

type EmployeeListResult struct {
	Employees  []EmployeeView      `json:"employees"`
	Pagination core.PageDescriptor `json:"pagination"`
}

type ExpenseView struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountFmt   string `json:"amount_formatted"`
	ExpenseDate string `json:"expense_date"`
}

type ExpenseListResult struct {
	Expenses   []ExpenseView       `json:"expenses"`
	Pagination core.PageDescriptor `json:"pagination"`
}

type PurchaseView struct {
	ID           int    `json:"id"`
	SupplierID   int    `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     string `json:"quantity"`
	UnitCost     string `json:"unit_cost"`
	UnitCostFmt  string `json:"unit_cost_formatted"`
	TotalFmt     string `json:"total_formatted"`
	PurchaseDate string `json:"purchase_date"`
}

type PurchaseListResult struct {
	Purchases  []PurchaseView      `json:"purchases"`
	Pagination core.PageDescriptor `json:"pagination"`
}

type SaleItemView struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type SaleView struct {
	ID           int            `json:"id"`
	CustomerID   int            `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	SaleDate     string         `json:"sale_date"`
	Total        string         `json:"total"`
	TotalFmt     string         `json:"total_formatted"`
	Items        []SaleItemView `json:"items"`
}

type SaleListResult struct {
	Sales      []SaleView          `json:"sales"`
	Pagination core.PageDescriptor `json:"pagination"`
}

// ── Dashboard and reports ───────────────────────────────────────────────────

type TopProductView struct {
	Name          string `json:"name"`
	TotalQuantity string `json:"total_quantity"`
}

type LowStockView struct {
	Name          string `json:"name"`
	StockQuantity string `json:"stock_quantity"`
	UnitType      string `json:"unit_type"`
}

type DashboardStatsResult struct {
	TodaySales       string           `json:"today_sales"`
	MonthlySales     string           `json:"monthly_sales"`
	MonthlyProfit    string           `json:"monthly_profit"`
	MonthlyExpenses  string           `json:"monthly_expenses"`
	StockValue       string           `json:"stock_value"`
	LowStockCount    int              `json:"low_stock_count"`
	TopProducts      []TopProductView `json:"top_products"`
	LowStockProducts []LowStockView   `json:"low_stock_products"`
}

type ReportRowView struct {
	Date      string `json:"date"`
	Sales     string `json:"sales"`
	Profit    string `json:"profit"`
	NumSales  int    `json:"num_sales"`
	SalesFmt  string `json:"sales_formatted"`
	ProfitFmt string `json:"profit_formatted"`
}

type ReportResult struct {
	Rows           []ReportRowView `json:"rows"`
	TotalSalesFmt  string          `json:"total_sales_formatted"`
	TotalProfitFmt string          `json:"total_profit_formatted"`
}

// SettingsResult is both the settings screen payload and the source of
// the currency symbol used for formatting everywhere else.
type SettingsResult struct {
	StoreName       string `json:"store_name"`
	CurrencySymbol  string `json:"currency_symbol"`
	LowStockDefault string `json:"low_stock_default"`
}
