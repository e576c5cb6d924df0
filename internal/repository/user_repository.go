package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

// UserRepository provides data access methods for the user table.
// Users are created once at bootstrap and immutable thereafter, so the
// repository exposes no update or delete.
type UserRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a new UserRepository scoped to the provided transaction.
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *UserRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertUser stores a new user. The repository assigns the identifier and
// creation timestamp when the caller has not set them.
// Returns ErrDuplicateUsername when the username is already taken.
func (r *UserRepository) InsertUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO user (id, username, display_name, role, password, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.DisplayName,
		string(user.Role),
		user.Password,
		user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUser retrieves a single user by ID.
// Returns ErrUserNotFound if no user with the given ID exists.
func (r *UserRepository) GetUser(userID string) (model.User, error) {
	return r.getUserWhere("id = ?", userID)
}

// GetUserByUsername retrieves a single user by username.
// Returns ErrUserNotFound if no user with the given username exists.
func (r *UserRepository) GetUserByUsername(username string) (model.User, error) {
	return r.getUserWhere("username = ?", username)
}

func (r *UserRepository) getUserWhere(where string, arg any) (model.User, error) {
	query := `
		SELECT id, username, display_name, role, password, created_at
		FROM user
		WHERE ` + where

	var u model.User
	var role, createdAtStr string
	var password sql.NullString

	err := r.getQuerier().QueryRow(query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.DisplayName,
		&role,
		&password,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	u.Role = model.Role(role)
	if password.Valid {
		u.Password = &password.String
	}
	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}

// ListUsers retrieves all users in creation order.
func (r *UserRepository) ListUsers() ([]model.User, error) {
	query := `
		SELECT id, username, display_name, role, password, created_at
		FROM user
		ORDER BY created_at ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}

	for rows.Next() {
		var u model.User
		var role, createdAtStr string
		var password sql.NullString

		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.DisplayName,
			&role,
			&password,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}

		u.Role = model.Role(role)
		if password.Valid {
			u.Password = &password.String
		}
		u.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return users, nil
}

// CountUsers returns the number of stored users. Seeding uses this to
// decide whether the store is empty.
func (r *UserRepository) CountUsers() (int, error) {
	var count int
	err := r.getQuerier().QueryRow("SELECT COUNT(*) FROM user").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
