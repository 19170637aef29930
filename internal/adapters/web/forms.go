package web

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"shopkeeper/internal/app"
)

// Save actions carry their modal form as a single url-encoded form_data
// field, mirroring how the admin screens serialize their forms.
func formData(form url.Values) (url.Values, error) {
	fields, err := url.ParseQuery(form.Get("form_data"))
	if err != nil {
		return nil, fmt.Errorf("invalid form data")
	}
	return fields, nil
}

// optionalID parses an entity ID field, returning 0 when absent so the
// save becomes a create.
func optionalID(fields url.Values, key string) (int, error) {
	raw := fields.Get(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

func requiredID(fields url.Values, key string) (int, error) {
	id, err := optionalID(fields, key)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("missing %s", key)
	}
	return id, nil
}

func requiredText(fields url.Values, key string) (string, error) {
	v := fields.Get(key)
	if v == "" {
		return "", fmt.Errorf("missing %s", key)
	}
	return v, nil
}

func parseAmount(fields url.Values, key string) (decimal.Decimal, error) {
	raw := fields.Get(key)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("missing %s", key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseDate accepts YYYY-MM-DD and defaults to today when absent.
func parseDate(fields url.Values, key string) (time.Time, error) {
	raw := fields.Get(key)
	if raw == "" {
		return time.Now(), nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseSaveProduct(fields url.Values) (app.SaveProductRequest, error) {
	var req app.SaveProductRequest
	var err error
	if req.ID, err = optionalID(fields, "product_id"); err != nil {
		return req, err
	}
	if req.Name, err = requiredText(fields, "name"); err != nil {
		return req, err
	}
	req.Category = fields.Get("category")
	req.UnitType = fields.Get("unit_type")
	if req.SellingPrice, err = parseAmount(fields, "selling_price"); err != nil {
		return req, err
	}
	if req.LowStockThreshold, err = parseAmount(fields, "low_stock_threshold"); err != nil {
		return req, err
	}
	req.HasExpiry = fields.Get("has_expiry") == "1"
	return req, nil
}

func parseSaveSupplier(fields url.Values) (app.SaveSupplierRequest, error) {
	var req app.SaveSupplierRequest
	var err error
	if req.ID, err = optionalID(fields, "supplier_id"); err != nil {
		return req, err
	}
	if req.Name, err = requiredText(fields, "name"); err != nil {
		return req, err
	}
	req.ContactPerson = fields.Get("contact_person")
	req.Phone = fields.Get("phone")
	req.Address = fields.Get("address")
	return req, nil
}

func parseSaveCustomer(fields url.Values) (app.SaveCustomerRequest, error) {
	var req app.SaveCustomerRequest
	var err error
	if req.ID, err = optionalID(fields, "customer_id"); err != nil {
		return req, err
	}
	if req.Name, err = requiredText(fields, "name"); err != nil {
		return req, err
	}
	req.Phone = fields.Get("phone")
	req.Address = fields.Get("address")
	return req, nil
}

func parseSaveEmployee(fields url.Values) (app.SaveEmployeeRequest, error) {
	var req app.SaveEmployeeRequest
	var err error
	if req.ID, err = optionalID(fields, "employee_id"); err != nil {
		return req, err
	}
	if req.Name, err = requiredText(fields, "name"); err != nil {
		return req, err
	}
	req.Phone = fields.Get("phone")
	req.Role = fields.Get("role")
	if req.MonthlySalary, err = parseAmount(fields, "monthly_salary"); err != nil {
		return req, err
	}
	return req, nil
}

func parseSaveExpense(fields url.Values) (app.SaveExpenseRequest, error) {
	var req app.SaveExpenseRequest
	var err error
	if req.ID, err = optionalID(fields, "expense_id"); err != nil {
		return req, err
	}
	if req.Category, err = requiredText(fields, "category"); err != nil {
		return req, err
	}
	req.Description = fields.Get("description")
	if req.Amount, err = parseAmount(fields, "amount"); err != nil {
		return req, err
	}
	if req.ExpenseDate, err = parseDate(fields, "expense_date"); err != nil {
		return req, err
	}
	return req, nil
}

func parseSavePurchase(fields url.Values) (app.SavePurchaseRequest, error) {
	var req app.SavePurchaseRequest
	var err error
	if req.ID, err = optionalID(fields, "purchase_id"); err != nil {
		return req, err
	}
	supplierID, err := optionalID(fields, "supplier_id")
	if err != nil {
		return req, err
	}
	if supplierID != 0 {
		req.SupplierID = &supplierID
	}
	if req.ProductID, err = requiredID(fields, "product_id"); err != nil {
		return req, err
	}
	if req.Quantity, err = parseAmount(fields, "quantity"); err != nil {
		return req, err
	}
	if req.UnitCost, err = parseAmount(fields, "unit_cost"); err != nil {
		return req, err
	}
	if req.PurchaseDate, err = parseDate(fields, "purchase_date"); err != nil {
		return req, err
	}
	return req, nil
}

// parseSaveSale reads the flat sale form as a single-line sale. The
// application layer also accepts multi-line sales, but the modal form
// records one product at a time.
func parseSaveSale(fields url.Values) (app.SaveSaleRequest, error) {
	var req app.SaveSaleRequest
	var err error
	if req.ID, err = optionalID(fields, "sale_id"); err != nil {
		return req, err
	}
	customerID, err := optionalID(fields, "customer_id")
	if err != nil {
		return req, err
	}
	if customerID != 0 {
		req.CustomerID = &customerID
	}
	if req.SaleDate, err = parseDate(fields, "sale_date"); err != nil {
		return req, err
	}

	var item app.SaveSaleItem
	if item.ProductID, err = requiredID(fields, "product_id"); err != nil {
		return req, err
	}
	if item.Quantity, err = parseAmount(fields, "quantity"); err != nil {
		return req, err
	}
	if item.UnitPrice, err = parseAmount(fields, "unit_price"); err != nil {
		return req, err
	}
	req.Items = []app.SaveSaleItem{item}
	return req, nil
}

func parseSaveSettings(fields url.Values) (app.SaveSettingsRequest, error) {
	var req app.SaveSettingsRequest
	var err error
	if req.StoreName, err = requiredText(fields, "store_name"); err != nil {
		return req, err
	}
	req.CurrencySymbol = fields.Get("currency_symbol")
	req.LowStockDefault = fields.Get("low_stock_default")
	return req, nil
}
