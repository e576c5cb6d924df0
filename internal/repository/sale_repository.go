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

// SaleRepository provides data access methods for the sale table.
// Sales are append-only records of liquidations; corrections happen through
// the investment's current value, never by editing a sale.
type SaleRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSaleRepository creates a new SaleRepository with the provided database connection.
func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// WithTx returns a new SaleRepository scoped to the provided transaction.
func (r *SaleRepository) WithTx(tx *sql.Tx) *SaleRepository {
	return &SaleRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *SaleRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertSale stores a new sale. The repository assigns the identifier and
// creation timestamp when the caller has not set them.
func (r *SaleRepository) InsertSale(ctx context.Context, sale *model.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sale (
			id, investment_id, investment_name, sale_amount, sale_price,
			alle_percentage, ali_percentage, sale_date, created_by, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		sale.ID,
		sale.InvestmentID,
		sale.InvestmentName,
		sale.SaleAmount.String(),
		sale.SalePrice.String(),
		sale.AllePercentage,
		sale.AliPercentage,
		sale.SaleDate.String(),
		sale.CreatedBy,
		sale.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	return nil
}

// GetSale retrieves a single sale by its ID.
// Returns ErrSaleNotFound if no sale with the given ID exists.
func (r *SaleRepository) GetSale(saleID string) (model.Sale, error) {
	query := `
		SELECT id, investment_id, investment_name, sale_amount, sale_price,
		       alle_percentage, ali_percentage, sale_date, created_by, created_at
		FROM sale
		WHERE id = ?
	`

	row := r.getQuerier().QueryRow(query, saleID)
	sale, err := scanSale(row.Scan)
	if err == sql.ErrNoRows {
		return model.Sale{}, apperrors.ErrSaleNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}

	return sale, nil
}

// ListSales retrieves all sales sorted descending by sale date. Same-day
// entries keep insertion order relative to each other.
func (r *SaleRepository) ListSales() ([]model.Sale, error) {
	query := `
		SELECT id, investment_id, investment_name, sale_amount, sale_price,
		       alle_percentage, ali_percentage, sale_date, created_by, created_at
		FROM sale
		ORDER BY sale_date DESC, created_at ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale table: %w", err)
	}
	defer rows.Close()

	sales := []model.Sale{}

	for rows.Next() {
		sale, err := scanSale(rows.Scan)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale table: %w", err)
	}

	return sales, nil
}

func scanSale(scan func(dest ...any) error) (model.Sale, error) {
	var s model.Sale
	var amountStr, priceStr, saleDateStr, createdAtStr string

	err := scan(
		&s.ID,
		&s.InvestmentID,
		&s.InvestmentName,
		&amountStr,
		&priceStr,
		&s.AllePercentage,
		&s.AliPercentage,
		&saleDateStr,
		&s.CreatedBy,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Sale{}, err
	}
	if err != nil {
		return model.Sale{}, fmt.Errorf("failed to scan sale table results: %w", err)
	}

	if s.SaleAmount, err = ParseDecimal(amountStr); err != nil {
		return model.Sale{}, err
	}
	if s.SalePrice, err = ParseDecimal(priceStr); err != nil {
		return model.Sale{}, err
	}

	saleDate, err := ParseTime(saleDateStr)
	if err != nil {
		return model.Sale{}, err
	}
	s.SaleDate = model.NewDate(saleDate)

	if s.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Sale{}, err
	}

	return s, nil
}
