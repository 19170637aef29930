package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"shopkeeper/internal/db"
)

// ErrInvalidCredentials is returned by Authenticate for a bad username
// or password. Callers show the same message for both cases.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService interface {
	// Authenticate verifies a username/password pair and returns the
	// matching active user.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// Get returns an active user by ID.
	Get(ctx context.Context, id int) (*User, error)

	// Create adds a user with a bcrypt-hashed password.
	Create(ctx context.Context, username, email, password, role string) (*User, error)
}

type userService struct {
	pool db.Pool
}

// NewUserService constructs a UserService backed by PostgreSQL.
func NewUserService(pool db.Pool) UserService {
	return &userService{pool: pool}
}

const userColumns = `id, username, email, password_hash, role, is_active, created_at`

func scanUser(row pgx.Row, u *User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u := &User{}
	err := scanUser(s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1 AND is_active = true`,
		username,
	), u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id int) (*User, error) {
	u := &User{}
	err := scanUser(s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND is_active = true`,
		id,
	), u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d not found", id)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, username, email, password, role string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{}
	err = scanUser(s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		username, email, string(hash), role,
	), u)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return u, nil
}
