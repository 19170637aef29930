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

// ExpenseInput carries an expense create/update. ID 0 means create.
type ExpenseInput struct {
	ID          int
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
}

type ExpenseService interface {
	// List returns one page of expenses, newest first. Search matches
	// category or description.
	List(ctx context.Context, q ListQuery) ([]Expense, PageDescriptor, error)
	Save(ctx context.Context, input ExpenseInput) (*Expense, error)
	Delete(ctx context.Context, id int) error
}

type expenseService struct {
	pool db.Pool
}

// NewExpenseService constructs an ExpenseService backed by PostgreSQL.
func NewExpenseService(pool db.Pool) ExpenseService {
	return &expenseService{pool: pool}
}

const expenseColumns = `id, category, description, amount, expense_date, created_at`

func (s *expenseService) List(ctx context.Context, q ListQuery) ([]Expense, PageDescriptor, error) {
	q = q.Normalize()

	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM expenses
		WHERE ($1 = '' OR category ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')`,
		q.Search,
	).Scan(&total)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("count expenses: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE ($1 = '' OR category ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY expense_date DESC, id DESC
		LIMIT $2 OFFSET $3`,
		q.Search, PageSize, q.Offset(),
	)
	if err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.Amount,
			&e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, PageDescriptor{}, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, PageDescriptor{}, fmt.Errorf("list expenses: %w", err)
	}

	return expenses, NewPageDescriptor(q, total), nil
}

func (s *expenseService) Save(ctx context.Context, input ExpenseInput) (*Expense, error) {
	e := &Expense{}

	if input.ID == 0 {
		err := s.pool.QueryRow(ctx, `
			INSERT INTO expenses (category, description, amount, expense_date)
			VALUES ($1, $2, $3, $4)
			RETURNING `+expenseColumns,
			input.Category, input.Description, input.Amount, input.ExpenseDate,
		).Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("create expense: %w", err)
		}
		return e, nil
	}

	err := s.pool.QueryRow(ctx, `
		UPDATE expenses
		SET category = $2, description = $3, amount = $4, expense_date = $5
		WHERE id = $1
		RETURNING `+expenseColumns,
		input.ID, input.Category, input.Description, input.Amount, input.ExpenseDate,
	).Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("expense %d not found", input.ID)
		}
		return nil, fmt.Errorf("update expense %d: %w", input.ID, err)
	}
	return e, nil
}

func (s *expenseService) Delete(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %d not found", id)
	}
	return nil
}
