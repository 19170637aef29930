package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// User roles. Staff can manage records; only admins may delete them.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	UnitType          string          `json:"unit_type"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	HasExpiry         bool            `json:"has_expiry"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}

type Supplier struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Employee struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Role          string          `json:"role"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Expense struct {
	ID          int             `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Purchase is a single stock receipt: one product from one (optional)
// supplier. Saving a purchase moves product stock.
type Purchase struct {
	ID           int             `json:"id"`
	SupplierID   *int            `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Total        decimal.Decimal `json:"total"`
	PurchaseDate time.Time       `json:"purchase_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Sale is a multi-line sale. Each line snapshots the product cost at the
// time of sale so profit reporting is unaffected by later price changes.
type Sale struct {
	ID           int             `json:"id"`
	CustomerID   *int            `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name"`
	SaleDate     time.Time       `json:"sale_date"`
	Total        decimal.Decimal `json:"total"`
	Items        []SaleItem      `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
}

type SaleItem struct {
	ID          int             `json:"id"`
	SaleID      int             `json:"sale_id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}
