package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shopkeeper/internal/db"
)

// EmployeeInput carries an employee create/update. ID 0 means create.
type EmployeeInput struct {
	ID            int
	Name          string
	Phone         string
	Role          string
	MonthlySalary decimal.Decimal
}

type EmployeeService interface {
	List(ctx context.Context, q ListQuery) ([]Employee, PageDescriptor, error)
	Save(ctx context.Context, input EmployeeInput) (*Employee, error)
	Delete(ctx context.Context, id int) error
}

type employeeService struct {
	pool db.Pool
}

// NewEmployeeService constructs an EmployeeService backed by PostgreSQL.
func NewEmployeeService(pool db.Pool) EmployeeService {
	return &employeeService{pool: pool}
}

const employeeColumns = `id, name, phone, role, monthly_salary, is_active, created_at`

func (s *employeeService) List(ctx context.Context, q ListQuery) ([]Employee, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM employees
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR role ILIKE '%' || $1 || '%')`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count employees: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE is_active = true
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR role ILIKE '%' || $1 || '%')
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Role, &e.MonthlySalary,
			&e.IsActive, &e.CreatedAt); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list employees: %w", err)
	}

	return employees, NewPageDescriptor(q, total), nil
}

func (s *employeeService) Save(ctx context.Context, input EmployeeInput) (*Employee, error) {
	e := &Employee{}

	if input.ID == 0 {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO employees (name, phone, role, monthly_salary)
			VALUES ($1, $2, $3, $4)
			RETURNING `+employeeColumns,
			input.Name, input.Phone, input.Role, input.MonthlySalary,
		).Scan(&e.ID, &e.Name, &e.Phone, &e.Role, &e.MonthlySalary, &e.IsActive, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("create employee %q: %w", input.Name, err)
		}
		return e, nil
	}

	err := s.pool.QueryRow(ctx, `
		UPDATE employees
		SET name = $2, phone = $3, role = $4, monthly_salary = $5
		WHERE id = $1 AND is_active = true
		RETURNING `+employeeColumns,
		input.ID, input.Name, input.Phone, input.Role, input.MonthlySalary,
	).Scan(&e.ID, &e.Name, &e.Phone, &e.Role, &e.MonthlySalary, &e.IsActive, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %d not found", input.ID)
		}
		return nil, fmt.Errorf("update employee %d: %w", input.ID, err)
	}
	return e, nil
}

func (s *employeeService) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE employees SET is_active = false WHERE id = $1 AND is_active = true", id)
	if err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %d not found", id)
	}
	return nil
}
