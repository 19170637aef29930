// Package i18n holds the localized string catalog handed to admin
// clients. JSON keys are part of the page-injected globals contract, so
// they stay camelCase even though Go field names do not.
package i18n

// Catalog is the full set of user-visible strings for the admin UI.
type Catalog struct {
	Loading         string `json:"loading"`
	ErrorOccurred   string `json:"errorOccurred"`
	ConfirmDelete   string `json:"confirmDelete"`
	NoItemsFound    string `json:"noItemsFound"`
	Edit            string `json:"edit"`
	Delete          string `json:"delete"`
	AddNew          string `json:"addNew"`
	Prev            string `json:"prev"`
	Next            string `json:"next"`
	CurrencySymbol  string `json:"currencySymbol"`
	TodaySales      string `json:"todaySales"`
	MonthlySales    string `json:"monthlySales"`
	MonthlyProfit   string `json:"monthlyProfit"`
	MonthlyExpenses string `json:"monthlyExpenses"`
	StockValue      string `json:"stockValue"`
	LowStockItems   string `json:"lowStockItems"`
	UnitsSold       string `json:"unitsSold"`
	InStock         string `json:"inStock"`
	NoTopProducts   string `json:"noTopProducts"`
	AllStockGood    string `json:"allStockGood"`
}

// Default returns the English catalog. CurrencySymbol is overridden at
// runtime from the store settings.
func Default() Catalog {
	return Catalog{
		Loading:         "Loading...",
		ErrorOccurred:   "An error occurred.",
		ConfirmDelete:   "Are you sure?",
		NoItemsFound:    "No items found.",
		Edit:            "Edit",
		Delete:          "Delete",
		AddNew:          "Add New",
		Prev:            "Prev",
		Next:            "Next",
		CurrencySymbol:  "Rs.",
		TodaySales:      "Today's Sales",
		MonthlySales:    "This Month's Sales",
		MonthlyProfit:   "This Month's Profit",
		MonthlyExpenses: "This Month's Expenses",
		StockValue:      "Total Stock Value",
		LowStockItems:   "Low Stock Items",
		UnitsSold:       "units",
		InStock:         "In Stock:",
		NoTopProducts:   "No top selling products this month.",
		AllStockGood:    "All stock levels are good.",
	}
}
