package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
)

// SaleService handles sale business logic. A sale never deletes or replaces
// the investment: it reduces the current value by exactly the sale amount
// and leaves the investment's own ownership split untouched. The sale
// insert, the value reduction, and the audit entry are applied in one SQL
// transaction so a partial failure cannot record a sale without its value
// reduction or vice versa.
type SaleService struct {
	db              *sql.DB
	saleRepo        *repository.SaleRepository
	investmentRepo  *repository.InvestmentRepository
	transactionRepo *repository.TransactionRepository
}

// NewSaleService creates a new SaleService with the provided repository dependencies.
func NewSaleService(
	db *sql.DB,
	saleRepo *repository.SaleRepository,
	investmentRepo *repository.InvestmentRepository,
	transactionRepo *repository.TransactionRepository,
) *SaleService {
	return &SaleService{
		db:              db,
		saleRepo:        saleRepo,
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
	}
}

// ListSales retrieves all sales sorted descending by sale date.
func (s *SaleService) ListSales() ([]model.Sale, error) {
	return s.saleRepo.ListSales()
}

// GetSale retrieves a single sale by its ID.
func (s *SaleService) GetSale(saleID string) (model.Sale, error) {
	return s.saleRepo.GetSale(saleID)
}

// CreateSale records a liquidation against an investment.
//
// Rejections, in order: percentage sum not exactly 100 (ErrPercentageSum),
// referenced investment absent (ErrInvestmentNotFound), sale amount larger
// than the current value at call time (ErrSaleExceedsValue). A sale amount
// equal to the current value is accepted and drives the value to exactly 0.
//
// On success, within one transaction: the sale is persisted with the
// investment name snapshotted server-side, the investment's current value
// is reduced by exactly the sale amount, and a Sale audit entry is
// appended with the sale amount, sale date, and the sale's creator.
func (s *SaleService) CreateSale(ctx context.Context, req request.CreateSaleRequest) (model.Sale, error) {
	if req.AllePercentage+req.AliPercentage != 100 {
		return model.Sale{}, apperrors.ErrPercentageSum
	}

	saleDate, err := model.ParseDate(req.SaleDate)
	if err != nil {
		return model.Sale{}, err
	}

	investment, err := s.investmentRepo.GetInvestment(req.InvestmentID)
	if err != nil {
		return model.Sale{}, err
	}

	if req.SaleAmount.GreaterThan(investment.CurrentValue) {
		return model.Sale{}, apperrors.ErrSaleExceedsValue
	}

	sale := model.Sale{
		InvestmentID:   investment.ID,
		InvestmentName: investment.Name,
		SaleAmount:     req.SaleAmount,
		SalePrice:      req.SalePrice,
		AllePercentage: req.AllePercentage,
		AliPercentage:  req.AliPercentage,
		SaleDate:       saleDate,
		CreatedBy:      req.CreatedBy,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Sale{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.saleRepo.WithTx(tx).InsertSale(ctx, &sale); err != nil {
		return model.Sale{}, err
	}

	investment.CurrentValue = investment.CurrentValue.Sub(req.SaleAmount)
	if err := s.investmentRepo.WithTx(tx).UpdateInvestment(ctx, investment); err != nil {
		return model.Sale{}, err
	}

	audit := model.Transaction{
		Action:         model.ActionSale,
		InvestmentID:   investment.ID,
		InvestmentName: investment.Name,
		Amount:         sale.SaleAmount,
		Date:           sale.SaleDate,
		UserID:         sale.CreatedBy,
	}
	if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, &audit); err != nil {
		return model.Sale{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Sale{}, fmt.Errorf("failed to commit sale: %w", err)
	}

	return sale, nil
}
