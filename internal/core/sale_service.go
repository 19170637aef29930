package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shopkeeper/internal/db"
)

// SaleItemInput is one line of a sale.
type SaleItemInput struct {
	ProductID int
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SaleInput carries a sale create/update. ID 0 means create.
type SaleInput struct {
	ID         int
	CustomerID *int
	SaleDate   time.Time
	Items      []SaleItemInput
}

type SaleService interface {
	// List returns one page of sales, newest first, with line items
	// attached. Search matches the customer name or a sold product name.
	List(ctx context.Context, q ListQuery) ([]Sale, PageDescriptor, error)

	// Save records a sale and decrements product stock per line inside
	// one transaction. Each line snapshots the product's purchase price.
	// Editing a sale reverses the old lines first.
	Save(ctx context.Context, input SaleInput) (*Sale, error)

	// Delete removes a sale and returns its quantities to stock.
	Delete(ctx context.Context, id int) error
}

type saleService struct {
	pool db.Pool
}

// NewSaleService constructs a SaleService backed by PostgreSQL.
func NewSaleService(pool db.Pool) SaleService {
	return &saleService{pool: pool}
}

func (s *saleService) List(ctx context.Context, q ListQuery) ([]Sale, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM sales sa
		LEFT JOIN customers c ON c.id = sa.customer_id
		WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR EXISTS (
			SELECT 1 FROM sale_items si
			JOIN products pr ON pr.id = si.product_id
			WHERE si.sale_id = sa.id AND pr.name ILIKE '%' || $1 || '%'))`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count sales: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT sa.id, sa.customer_id, COALESCE(c.name, ''), sa.sale_date, sa.total, sa.created_at
		FROM sales sa
		LEFT JOIN customers c ON c.id = sa.customer_id
		WHERE ($1 = '' OR c.name ILIKE '%' || $1 || '%' OR EXISTS (
			SELECT 1 FROM sale_items si
			JOIN products pr ON pr.id = si.product_id
			WHERE si.sale_id = sa.id AND pr.name ILIKE '%' || $1 || '%'))
		ORDER BY sa.sale_date DESC, sa.id DESC
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []Sale
	var ids []int
	for rows.Next() {
		var sa Sale
		if err := rows.Scan(&sa.ID, &sa.CustomerID, &sa.CustomerName, &sa.SaleDate,
			&sa.Total, &sa.CreatedAt); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sa)
		ids = append(ids, sa.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list sales: %w", err)
	}

	if err := s.attachItems(ctx, sales, ids); err != nil {
		return nil, PageDescriptor{}, err
	}

	return sales, NewPageDescriptor(q, total), nil
}

// attachItems loads line items for all listed sales in one query.
func (s *saleService) attachItems(ctx context.Context, sales []Sale, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, pr.name, si.quantity, si.unit_price, si.cost_price
		FROM sale_items si
		JOIN products pr ON pr.id = si.product_id
		WHERE si.sale_id = ANY($1)
		ORDER BY si.id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	bySale := make(map[int][]SaleItem, len(ids))
	for rows.Next() {
		var it SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.CostPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		bySale[it.SaleID] = append(bySale[it.SaleID], it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}

	for i := range sales {
		sales[i].Items = bySale[sales[i].ID]
	}
	return nil
}

func (s *saleService) Save(ctx context.Context, input SaleInput) (*Sale, error) {
	if len(input.Items) == 0 {
		return nil, errors.New("a sale needs at least one item")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale save: %w", err)
	}
	defer tx.Rollback(ctx)

	id := input.ID
	if id != 0 {
		if err := reverseSaleItems(ctx, tx, id); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, "DELETE FROM sale_items WHERE sale_id = $1", id); err != nil {
			return nil, fmt.Errorf("clear sale %d items: %w", id, err)
		}
		tag, err := tx.Exec(ctx,
			"UPDATE sales SET customer_id = $2, sale_date = $3 WHERE id = $1",
			id, input.CustomerID, input.SaleDate,
		)
		if err != nil {
			return nil, fmt.Errorf("update sale %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("sale %d not found", id)
		}
	} else {
		err = tx.QueryRow(ctx,
			"INSERT INTO sales (customer_id, sale_date, total) VALUES ($1, $2, 0) RETURNING id",
			input.CustomerID, input.SaleDate,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("create sale: %w", err)
		}
	}

	total := decimal.Zero
	for _, item := range input.Items {
		var name string
		var stock, cost decimal.Decimal
		err := tx.QueryRow(ctx, `
			SELECT name, stock_quantity, purchase_price
			FROM products
			WHERE id = $1 AND is_active = true
			FOR UPDATE`,
			item.ProductID,
		).Scan(&name, &stock, &cost)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("product %d not found", item.ProductID)
			}
			return nil, fmt.Errorf("load product %d: %w", item.ProductID, err)
		}
		if stock.LessThan(item.Quantity) {
			return nil, fmt.Errorf("insufficient stock for %s", name)
		}

		if _, err := tx.Exec(ctx,
			"UPDATE products SET stock_quantity = stock_quantity - $2 WHERE id = $1",
			item.ProductID, item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, cost_price)
			VALUES ($1, $2, $3, $4, $5)`,
			id, item.ProductID, item.Quantity, item.UnitPrice, cost,
		); err != nil {
			return nil, fmt.Errorf("add sale item: %w", err)
		}

		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}

	if _, err := tx.Exec(ctx, "UPDATE sales SET total = $2 WHERE id = $1", id, total); err != nil {
		return nil, fmt.Errorf("total sale %d: %w", id, err)
	}

	sale := &Sale{}
	err = tx.QueryRow(ctx, `
		SELECT sa.id, sa.customer_id, COALESCE(c.name, ''), sa.sale_date, sa.total, sa.created_at
		FROM sales sa
		LEFT JOIN customers c ON c.id = sa.customer_id
		WHERE sa.id = $1`,
		id,
	).Scan(&sale.ID, &sale.CustomerID, &sale.CustomerName, &sale.SaleDate, &sale.Total, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("load sale %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale save: %w", err)
	}
	return sale, nil
}

func (s *saleService) Delete(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sale delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := reverseSaleItems(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM sale_items WHERE sale_id = $1", id); err != nil {
		return fmt.Errorf("clear sale %d items: %w", id, err)
	}
	tag, err := tx.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete sale %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale %d not found", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit sale delete: %w", err)
	}
	return nil
}

// reverseSaleItems puts every sold quantity of the sale back into stock.
func reverseSaleItems(ctx context.Context, tx pgx.Tx, saleID int) error {
	if _, err := tx.Exec(ctx, `
		UPDATE products p
		SET stock_quantity = p.stock_quantity + si.quantity
		FROM sale_items si
		WHERE si.sale_id = $1 AND si.product_id = p.id`,
		saleID,
	); err != nil {
		return fmt.Errorf("reverse sale %d stock: %w", saleID, err)
	}
	return nil
}
