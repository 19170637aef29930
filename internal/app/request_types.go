package app

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListRequest asks for one page of a searchable list.
type ListRequest struct {
	Page   int
	Search string
}

// SaveProductRequest creates or updates a product. ID 0 means create.
type SaveProductRequest struct {
	ID                int
	Name              string
	Category          string
	UnitType          string
	SellingPrice      decimal.Decimal
	LowStockThreshold decimal.Decimal
	HasExpiry         bool
}

type SaveSupplierRequest struct {
	ID            int
	Name          string
	ContactPerson string
	Phone         string
	Address       string
}

type SaveCustomerRequest struct {
	ID      int
	Name    string
	Phone   string
	Address string
}

type SaveEmployeeRequest struct {
	ID            int
	Name          string
	Phone         string
	Role          string
	MonthlySalary decimal.Decimal
}

type SaveExpenseRequest struct {
	ID          int
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
}

type SavePurchaseRequest struct {
	ID           int
	SupplierID   *int
	ProductID    int
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	PurchaseDate time.Time
}

// SaveSaleItem is one line of a SaveSaleRequest.
type SaveSaleItem struct {
	ProductID int
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

type SaveSaleRequest struct {
	ID         int
	CustomerID *int
	SaleDate   time.Time
	Items      []SaveSaleItem
}

type SaveSettingsRequest struct {
	StoreName       string
	CurrencySymbol  string
	LowStockDefault string
}
