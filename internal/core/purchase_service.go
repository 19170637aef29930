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

// PurchaseInput carries a purchase create/update. ID 0 means create.
type PurchaseInput struct {
	ID           int
	SupplierID   *int
	ProductID    int
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	PurchaseDate time.Time
}

type PurchaseService interface {
	// List returns one page of purchases, newest first. Search matches
	// the product or supplier name.
	List(ctx context.Context, q ListQuery) ([]Purchase, PageDescriptor, error)

	// Save records or amends a stock receipt. Product stock and the
	// product's current purchase price move in the same transaction;
	// editing a purchase reverses the old quantity first.
	Save(ctx context.Context, input PurchaseInput) (*Purchase, error)

	// Delete removes a purchase and reverses its stock movement.
	Delete(ctx context.Context, id int) error
}

type purchaseService struct {
	pool db.Pool
}

// NewPurchaseService constructs a PurchaseService backed by PostgreSQL.
func NewPurchaseService(pool db.Pool) PurchaseService {
	return &purchaseService{pool: pool}
}

const purchaseSelect = `
	SELECT p.id, p.supplier_id, COALESCE(s.name, ''), p.product_id, pr.name,
	       p.quantity, p.unit_cost, p.quantity * p.unit_cost, p.purchase_date, p.created_at
	FROM purchases p
	JOIN products pr ON pr.id = p.product_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

func scanPurchase(row pgx.Row, p *Purchase) error {
	return row.Scan(
		&p.ID, &p.SupplierID, &p.SupplierName, &p.ProductID, &p.ProductName,
		&p.Quantity, &p.UnitCost, &p.Total, &p.PurchaseDate, &p.CreatedAt,
	)
}

func (s *purchaseService) List(ctx context.Context, q ListQuery) ([]Purchase, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM purchases p
		JOIN products pr ON pr.id = p.product_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE ($1 = '' OR pr.name ILIKE '%' || $1 || '%' OR s.name ILIKE '%' || $1 || '%')`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count purchases: %w", err)
	}

	rows, err := s.pool.Query(ctx, purchaseSelect+`
		WHERE ($1 = '' OR pr.name ILIKE '%' || $1 || '%' OR s.name ILIKE '%' || $1 || '%')
		ORDER BY p.purchase_date DESC, p.id DESC
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []Purchase
	for rows.Next() {
		var p Purchase
		if err := scanPurchase(rows, &p); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list purchases: %w", err)
	}

	return purchases, NewPageDescriptor(q, total), nil
}

func (s *purchaseService) Save(ctx context.Context, input PurchaseInput) (*Purchase, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin purchase save: %w", err)
	}
	defer tx.Rollback(ctx)

	if input.ID != 0 {
		// Reverse the previous receipt before applying the new one.
		var oldProductID int
		var oldQty decimal.Decimal
		err := tx.QueryRow(ctx,
			"SELECT product_id, quantity FROM purchases WHERE id = $1 FOR UPDATE",
			input.ID,
		).Scan(&oldProductID, &oldQty)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("purchase %d not found", input.ID)
			}
			return nil, fmt.Errorf("load purchase %d: %w", input.ID, err)
		}
		if _, err := tx.Exec(ctx,
			"UPDATE products SET stock_quantity = stock_quantity - $2 WHERE id = $1",
			oldProductID, oldQty,
		); err != nil {
			return nil, fmt.Errorf("reverse purchase %d stock: %w", input.ID, err)
		}
	}

	var id int
	if input.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO purchases (supplier_id, product_id, quantity, unit_cost, purchase_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			input.SupplierID, input.ProductID, input.Quantity, input.UnitCost, input.PurchaseDate,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("create purchase: %w", err)
		}
	} else {
		id = input.ID
		if _, err := tx.Exec(ctx, `
			UPDATE purchases
			SET supplier_id = $2, product_id = $3, quantity = $4, unit_cost = $5, purchase_date = $6
			WHERE id = $1`,
			id, input.SupplierID, input.ProductID, input.Quantity, input.UnitCost, input.PurchaseDate,
		); err != nil {
			return nil, fmt.Errorf("update purchase %d: %w", id, err)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, purchase_price = $3
		WHERE id = $1 AND is_active = true`,
		input.ProductID, input.Quantity, input.UnitCost,
	)
	if err != nil {
		return nil, fmt.Errorf("apply purchase stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("product %d not found", input.ProductID)
	}

	p := &Purchase{}
	if err := scanPurchase(tx.QueryRow(ctx, purchaseSelect+" WHERE p.id = $1", id), p); err != nil {
		return nil, fmt.Errorf("load purchase %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase save: %w", err)
	}
	return p, nil
}

func (s *purchaseService) Delete(ctx context.Context, id int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin purchase delete: %w", err)
	}
	defer tx.Rollback(ctx)

	var productID int
	var qty decimal.Decimal
	err = tx.QueryRow(ctx,
		"SELECT product_id, quantity FROM purchases WHERE id = $1 FOR UPDATE", id,
	).Scan(&productID, &qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("purchase %d not found", id)
		}
		return fmt.Errorf("load purchase %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE products SET stock_quantity = stock_quantity - $2 WHERE id = $1",
		productID, qty,
	); err != nil {
		return fmt.Errorf("reverse purchase %d stock: %w", id, err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM purchases WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete purchase %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purchase delete: %w", err)
	}
	return nil
}
