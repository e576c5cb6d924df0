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

// InvestmentRepository provides data access methods for the investment table.
type InvestmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// WithTx returns a new InvestmentRepository scoped to the provided transaction.
func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *InvestmentRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertInvestment stores a new investment. The repository assigns the
// identifier and creation timestamp when the caller has not set them.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv *model.Investment) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO investment (
			id, name, symbol, type, initial_value, current_value,
			alle_percentage, ali_percentage, purchase_date, created_by, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		inv.ID,
		inv.Name,
		inv.Symbol,
		inv.Type,
		inv.InitialValue.String(),
		inv.CurrentValue.String(),
		inv.AllePercentage,
		inv.AliPercentage,
		inv.PurchaseDate.String(),
		inv.CreatedBy,
		inv.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// GetInvestment retrieves a single investment by its ID.
// Returns ErrInvestmentNotFound if no investment with the given ID exists.
func (r *InvestmentRepository) GetInvestment(investmentID string) (model.Investment, error) {
	query := `
		SELECT id, name, symbol, type, initial_value, current_value,
		       alle_percentage, ali_percentage, purchase_date, created_by, created_at
		FROM investment
		WHERE id = ?
	`

	row := r.getQuerier().QueryRow(query, investmentID)
	inv, err := scanInvestment(row.Scan)
	if err == sql.ErrNoRows {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, err
	}

	return inv, nil
}

// ListInvestments retrieves all investments in creation order.
func (r *InvestmentRepository) ListInvestments() ([]model.Investment, error) {
	query := `
		SELECT id, name, symbol, type, initial_value, current_value,
		       alle_percentage, ali_percentage, purchase_date, created_by, created_at
		FROM investment
		ORDER BY created_at ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows.Scan)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// UpdateInvestment writes the full merged record back to the store.
// Callers are expected to have loaded the existing record and merged partial
// fields into it first, so the percentage invariant is always validated
// against the resulting pair rather than the supplied delta.
// Returns ErrInvestmentNotFound if no investment with the given ID exists.
func (r *InvestmentRepository) UpdateInvestment(ctx context.Context, inv model.Investment) error {
	query := `
		UPDATE investment
		SET name = ?, symbol = ?, type = ?, initial_value = ?, current_value = ?,
		    alle_percentage = ?, ali_percentage = ?, purchase_date = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		inv.Name,
		inv.Symbol,
		inv.Type,
		inv.InitialValue.String(),
		inv.CurrentValue.String(),
		inv.AllePercentage,
		inv.AliPercentage,
		inv.PurchaseDate.String(),
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// DeleteInvestment removes an investment. Hard delete, no tombstone; the
// audit trail carries the denormalized name snapshot instead.
// Returns ErrInvestmentNotFound if no investment with the given ID exists.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	result, err := r.getQuerier().ExecContext(ctx, "DELETE FROM investment WHERE id = ?", investmentID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// scanInvestment scans one investment row via the provided scan function,
// shared between single-row and multi-row queries.
func scanInvestment(scan func(dest ...any) error) (model.Investment, error) {
	var inv model.Investment
	var symbol sql.NullString
	var initialStr, currentStr, purchaseDateStr, createdAtStr string

	err := scan(
		&inv.ID,
		&inv.Name,
		&symbol,
		&inv.Type,
		&initialStr,
		&currentStr,
		&inv.AllePercentage,
		&inv.AliPercentage,
		&purchaseDateStr,
		&inv.CreatedBy,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Investment{}, err
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to scan investment table results: %w", err)
	}

	if symbol.Valid {
		inv.Symbol = symbol.String
	}

	if inv.InitialValue, err = ParseDecimal(initialStr); err != nil {
		return model.Investment{}, err
	}
	if inv.CurrentValue, err = ParseDecimal(currentStr); err != nil {
		return model.Investment{}, err
	}

	purchaseDate, err := ParseTime(purchaseDateStr)
	if err != nil {
		return model.Investment{}, err
	}
	inv.PurchaseDate = model.NewDate(purchaseDate)

	if inv.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Investment{}, err
	}

	return inv, nil
}
