package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shopkeeper/internal/db"
)

// CustomerInput carries a customer create/update. ID 0 means create.
type CustomerInput struct {
	ID      int
	Name    string
	Phone   string
	Address string
}

type CustomerService interface {
	List(ctx context.Context, q ListQuery) ([]Customer, PageDescriptor, error)
	Save(ctx context.Context, input CustomerInput) (*Customer, error)
	Delete(ctx context.Context, id int) error
}

type customerService struct {
	pool db.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool db.Pool) CustomerService {
	return &customerService{pool: pool}
}

const customerColumns = `id, name, phone, address, is_active, created_at`

func (s *customerService) List(ctx context.Context, q ListQuery) ([]Customer, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM customers
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%')`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count customers: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%')
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list customers: %w", err)
	}

	return customers, NewPageDescriptor(q, total), nil
}

func (s *customerService) Save(ctx context.Context, input CustomerInput) (*Customer, error) {
	c := &Customer{}

	if input.ID == 0 {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO customers (name, phone, address)
			VALUES ($1, $2, $3)
			RETURNING `+customerColumns,
			input.Name, input.Phone, input.Address,
		).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.IsActive, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("create customer %q: %w", input.Name, err)
		}
		return c, nil
	}

	err := s.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, address = $4
		WHERE id = $1 AND is_active = true
		RETURNING `+customerColumns,
		input.ID, input.Name, input.Phone, input.Address,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d not found", input.ID)
		}
		return nil, fmt.Errorf("update customer %d: %w", input.ID, err)
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE customers SET is_active = false WHERE id = $1 AND is_active = true", id)
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d not found", id)
	}
	return nil
}
