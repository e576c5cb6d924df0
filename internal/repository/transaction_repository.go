package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table. The table is an append-only audit log: there is no update and no
// delete, by design.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TransactionRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertTransaction appends a new audit-log entry. The repository assigns
// the identifier and creation timestamp when the caller has not set them.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO "transaction" (id, action, investment_id, investment_name, amount, date, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.Action,
		t.InvestmentID,
		t.InvestmentName,
		t.Amount.String(),
		t.Date.String(),
		t.UserID,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a single transaction by its ID.
// Returns ErrTransactionNotFound if no transaction with the given ID exists.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, action, investment_id, investment_name, amount, date, user_id, created_at
		FROM "transaction"
		WHERE id = ?
	`

	row := r.getQuerier().QueryRow(query, transactionID)
	t, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// ListTransactions retrieves all transactions sorted descending by
// transaction date. Same-day entries keep insertion order relative to each
// other; transaction dates have day granularity only.
func (r *TransactionRepository) ListTransactions() ([]model.Transaction, error) {
	query := `
		SELECT id, action, investment_id, investment_name, amount, date, user_id, created_at
		FROM "transaction"
		ORDER BY date DESC, created_at ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var amountStr, dateStr, createdAtStr string

	err := scan(
		&t.ID,
		&t.Action,
		&t.InvestmentID,
		&t.InvestmentName,
		&amountStr,
		&dateStr,
		&t.UserID,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	if t.Amount, err = ParseDecimal(amountStr); err != nil {
		return model.Transaction{}, err
	}

	date, err := ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Date = model.NewDate(date)

	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
