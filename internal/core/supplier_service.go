package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shopkeeper/internal/db"
)

// SupplierInput carries a supplier create/update. ID 0 means create.
type SupplierInput struct {
	ID            int
	Name          string
	ContactPerson string
	Phone         string
	Address       string
}

type SupplierService interface {
	List(ctx context.Context, q ListQuery) ([]Supplier, PageDescriptor, error)
	Save(ctx context.Context, input SupplierInput) (*Supplier, error)
	Delete(ctx context.Context, id int) error
}

type supplierService struct {
	pool db.Pool
}

// NewSupplierService constructs a SupplierService backed by PostgreSQL.
func NewSupplierService(pool db.Pool) SupplierService {
	return &supplierService{pool: pool}
}

const supplierColumns = `id, name, contact_person, phone, address, is_active, created_at`

func (s *supplierService) List(ctx context.Context, q ListQuery) ([]Supplier, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM suppliers
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR contact_person ILIKE '%' || $1 || '%')`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count suppliers: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR contact_person ILIKE '%' || $1 || '%')
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var v Supplier
		if err := rows.Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Phone, &v.Address,
			&v.IsActive, &v.CreatedAt); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list suppliers: %w", err)
	}

	return suppliers, NewPageDescriptor(q, total), nil
}

func (s *supplierService) Save(ctx context.Context, input SupplierInput) (*Supplier, error) {
	v := &Supplier{}

	if input.ID == 0 {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO suppliers (name, contact_person, phone, address)
			VALUES ($1, $2, $3, $4)
			RETURNING `+supplierColumns,
			input.Name, input.ContactPerson, input.Phone, input.Address,
		).Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Phone, &v.Address, &v.IsActive, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("create supplier %q: %w", input.Name, err)
		}
		return v, nil
	}

	err := s.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $2, contact_person = $3, phone = $4, address = $5
		WHERE id = $1 AND is_active = true
		RETURNING `+supplierColumns,
		input.ID, input.Name, input.ContactPerson, input.Phone, input.Address,
	).Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Phone, &v.Address, &v.IsActive, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d not found", input.ID)
		}
		return nil, fmt.Errorf("update supplier %d: %w", input.ID, err)
	}
	return v, nil
}

func (s *supplierService) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE suppliers SET is_active = false WHERE id = $1 AND is_active = true", id)
	if err != nil {
		return fmt.Errorf("delete supplier %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d not found", id)
	}
	return nil
}
