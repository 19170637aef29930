package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shopkeeper/internal/db"
)

// DashboardStats is the snapshot shown on the dashboard. Money values
// are raw; the caller formats them for display.
type DashboardStats struct {
	TodaySales      decimal.Decimal
	MonthlySales    decimal.Decimal
	MonthlyProfit   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	StockValue      decimal.Decimal
	LowStockCount   int
	TopProducts     []TopProduct
	LowStock        []LowStockProduct
}

// TopProduct is a best seller of the current month.
type TopProduct struct {
	Name      string
	UnitsSold decimal.Decimal
}

// LowStockProduct is a product at or below its low stock threshold.
type LowStockProduct struct {
	Name          string
	StockQuantity decimal.Decimal
	UnitType      string
}

// ReportRow is one day of the sales report.
type ReportRow struct {
	Date     time.Time
	Sales    decimal.Decimal
	Profit   decimal.Decimal
	NumSales int
}

type ReportingService interface {
	// DashboardStats aggregates today's and the current month's trading
	// figures at the given reference time.
	DashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error)

	// SalesReport returns per-day sales and profit between from and to
	// inclusive, oldest day first.
	SalesReport(ctx context.Context, from, to time.Time) ([]ReportRow, error)
}

type reportingService struct {
	pool db.Pool
}

// NewReportingService constructs a ReportingService backed by PostgreSQL.
func NewReportingService(pool db.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) DashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}

	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total) FILTER (WHERE sale_date >= $1), 0),
		       COALESCE(SUM(total) FILTER (WHERE sale_date >= $2), 0)
		FROM sales
		WHERE sale_date >= $2`,
		today, monthStart,
	).Scan(&stats.TodaySales, &stats.MonthlySales)
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM((si.unit_price - si.cost_price) * si.quantity), 0)
		FROM sale_items si
		JOIN sales sa ON sa.id = si.sale_id
		WHERE sa.sale_date >= $1`,
		monthStart,
	).Scan(&stats.MonthlyProfit)
	if err != nil {
		return nil, fmt.Errorf("sum profit: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expense_date >= $1", monthStart,
	).Scan(&stats.MonthlyExpenses)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(stock_quantity * purchase_price), 0),
		       COUNT(*) FILTER (WHERE stock_quantity <= low_stock_threshold)
		FROM products
		WHERE is_active = true`,
	).Scan(&stats.StockValue, &stats.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("sum stock: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT pr.name, SUM(si.quantity) AS units
		FROM sale_items si
		JOIN sales sa ON sa.id = si.sale_id
		JOIN products pr ON pr.id = si.product_id
		WHERE sa.sale_date >= $1
		GROUP BY pr.name
		ORDER BY units DESC, pr.name
		LIMIT 5`,
		monthStart,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		stats.TopProducts = append(stats.TopProducts, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	lowRows, err := s.pool.Query(ctx, `
		SELECT name, stock_quantity, unit_type
		FROM products
		WHERE is_active = true AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity, name
		LIMIT 5`,
	)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer lowRows.Close()
	for lowRows.Next() {
		var lp LowStockProduct
		if err := lowRows.Scan(&lp.Name, &lp.StockQuantity, &lp.UnitType); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		stats.LowStock = append(stats.LowStock, lp)
	}
	if err := lowRows.Err(); err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}

	return stats, nil
}

func (s *reportingService) SalesReport(ctx context.Context, from, to time.Time) ([]ReportRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sa.sale_date::date AS day,
		       COALESCE(SUM(si.unit_price * si.quantity), 0),
		       COALESCE(SUM((si.unit_price - si.cost_price) * si.quantity), 0),
		       COUNT(DISTINCT sa.id)
		FROM sales sa
		JOIN sale_items si ON si.sale_id = sa.id
		WHERE sa.sale_date >= $1 AND sa.sale_date < $2 + interval '1 day'
		GROUP BY day
		ORDER BY day`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	defer rows.Close()

	var report []ReportRow
	for rows.Next() {
		var r ReportRow
		if err := rows.Scan(&r.Date, &r.Sales, &r.Profit, &r.NumSales); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		report = append(report, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	return report, nil
}
