package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shopkeeper/internal/db"
)

// ProductInput carries a product create/update. ID 0 means create.
type ProductInput struct {
	ID                int
	Name              string
	Category          string
	UnitType          string
	SellingPrice      decimal.Decimal
	PurchasePrice     decimal.Decimal
	LowStockThreshold decimal.Decimal
	HasExpiry         bool
}

type ProductService interface {
	// List returns one page of active products. Search matches name or
	// category, case-insensitively.
	List(ctx context.Context, q ListQuery) ([]Product, PageDescriptor, error)

	// Get returns an active product by ID.
	Get(ctx context.Context, id int) (*Product, error)

	// Save creates or updates a product and returns the stored row.
	Save(ctx context.Context, input ProductInput) (*Product, error)

	// Delete soft-deletes a product. Historic purchases and sales keep
	// referencing the row.
	Delete(ctx context.Context, id int) error
}

type productService struct {
	pool db.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool db.Pool) ProductService {
	return &productService{pool: pool}
}

const productColumns = `id, name, category, unit_type, stock_quantity, purchase_price,
	       selling_price, low_stock_threshold, has_expiry, is_active, created_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Category, &p.UnitType, &p.StockQuantity,
		&p.PurchasePrice, &p.SellingPrice, &p.LowStockThreshold,
		&p.HasExpiry, &p.IsActive, &p.CreatedAt,
	)
}

func (s *productService) List(ctx context.Context, q ListQuery) ([]Product, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count products: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list products: %w", err)
	}

	return products, NewPageDescriptor(q, total), nil
}

func (s *productService) Get(ctx context.Context, id int) (*Product, error) {
	p := &Product{}
	err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND is_active = true`,
		id,
	), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found", id)
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *productService) Save(ctx context.Context, input ProductInput) (*Product, error) {
	p := &Product{}

	if input.ID == 0 {
		err := scanProduct(s.pool.QueryRow(ctx, `
			INSERT INTO products (name, category, unit_type, selling_price, purchase_price,
			                      low_stock_threshold, has_expiry)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+productColumns,
			input.Name, input.Category, input.UnitType, input.SellingPrice,
			input.PurchasePrice, input.LowStockThreshold, input.HasExpiry,
		), p)
		if err != nil {
			return nil, fmt.Errorf("create product %q: %w", input.Name, err)
		}
		return p, nil
	}

	// purchase_price is not form-editable; it follows stock receipts.
	err := scanProduct(s.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, category = $3, unit_type = $4, selling_price = $5,
		    low_stock_threshold = $6, has_expiry = $7
		WHERE id = $1 AND is_active = true
		RETURNING `+productColumns,
		input.ID, input.Name, input.Category, input.UnitType, input.SellingPrice,
		input.LowStockThreshold, input.HasExpiry,
	), p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found", input.ID)
		}
		return nil, fmt.Errorf("update product %d: %w", input.ID, err)
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE products SET is_active = false WHERE id = $1 AND is_active = true", id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", id)
	}
	return nil
}
