package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
)

// InvestmentService handles investment business logic: the ownership
// percentage invariant and the audit-trail synthesis for every mutation.
// Each mutation and its audit entry are applied in one SQL transaction so a
// partial failure cannot leave an investment change without its log entry.
type InvestmentService struct {
	db              *sql.DB
	investmentRepo  *repository.InvestmentRepository
	transactionRepo *repository.TransactionRepository
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependencies.
func NewInvestmentService(
	db *sql.DB,
	investmentRepo *repository.InvestmentRepository,
	transactionRepo *repository.TransactionRepository,
) *InvestmentService {
	return &InvestmentService{
		db:              db,
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
	}
}

// ListInvestments retrieves all investments.
func (s *InvestmentService) ListInvestments() ([]model.Investment, error) {
	return s.investmentRepo.ListInvestments()
}

// GetInvestment retrieves a single investment by its ID.
func (s *InvestmentService) GetInvestment(investmentID string) (model.Investment, error) {
	return s.investmentRepo.GetInvestment(investmentID)
}

// CreateInvestment stores a new investment and synthesizes its Purchase
// audit entry: amount is the initial value, date the purchase date, actor
// the creator. The request is assumed field-validated; the percentage sum
// is re-checked here because it is a domain invariant, not request shape.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (model.Investment, error) {
	if req.AllePercentage+req.AliPercentage != 100 {
		return model.Investment{}, apperrors.ErrPercentageSum
	}

	purchaseDate, err := model.ParseDate(req.PurchaseDate)
	if err != nil {
		return model.Investment{}, err
	}

	currentValue := req.InitialValue
	if req.CurrentValue != nil {
		currentValue = *req.CurrentValue
	}

	investment := model.Investment{
		Name:           req.Name,
		Symbol:         req.Symbol,
		Type:           req.Type,
		InitialValue:   req.InitialValue,
		CurrentValue:   currentValue,
		AllePercentage: req.AllePercentage,
		AliPercentage:  req.AliPercentage,
		PurchaseDate:   purchaseDate,
		CreatedBy:      req.CreatedBy,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.investmentRepo.WithTx(tx).InsertInvestment(ctx, &investment); err != nil {
		return model.Investment{}, err
	}

	audit := model.Transaction{
		Action:         model.ActionPurchase,
		InvestmentID:   investment.ID,
		InvestmentName: investment.Name,
		Amount:         investment.InitialValue,
		Date:           investment.PurchaseDate,
		UserID:         investment.CreatedBy,
	}
	if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, &audit); err != nil {
		return model.Investment{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Investment{}, fmt.Errorf("failed to commit investment creation: %w", err)
	}

	return investment, nil
}

// UpdateInvestment merges the supplied partial fields into the stored
// record and persists the result, synthesizing an Edit audit entry with the
// updated current value and today's date. The percentage invariant is
// validated on the RESULTING pair: a partial update supplying only one of
// the two fields is checked against the stored companion value.
func (s *InvestmentService) UpdateInvestment(ctx context.Context, investmentID string, req request.UpdateInvestmentRequest) (model.Investment, error) {
	investment, err := s.investmentRepo.GetInvestment(investmentID)
	if err != nil {
		return model.Investment{}, err
	}

	if req.Name != nil {
		investment.Name = *req.Name
	}
	if req.Symbol != nil {
		investment.Symbol = *req.Symbol
	}
	if req.Type != nil {
		investment.Type = *req.Type
	}
	if req.InitialValue != nil {
		investment.InitialValue = *req.InitialValue
	}
	if req.CurrentValue != nil {
		investment.CurrentValue = *req.CurrentValue
	}
	if req.AllePercentage != nil {
		investment.AllePercentage = *req.AllePercentage
	}
	if req.AliPercentage != nil {
		investment.AliPercentage = *req.AliPercentage
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := model.ParseDate(*req.PurchaseDate)
		if err != nil {
			return model.Investment{}, err
		}
		investment.PurchaseDate = purchaseDate
	}

	if investment.AllePercentage+investment.AliPercentage != 100 {
		return model.Investment{}, apperrors.ErrPercentageSum
	}

	actor := investment.CreatedBy
	if req.UpdatedBy != nil {
		actor = *req.UpdatedBy
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.investmentRepo.WithTx(tx).UpdateInvestment(ctx, investment); err != nil {
		return model.Investment{}, err
	}

	audit := model.Transaction{
		Action:         model.ActionEdit,
		InvestmentID:   investment.ID,
		InvestmentName: investment.Name,
		Amount:         investment.CurrentValue,
		Date:           model.Today(),
		UserID:         actor,
	}
	if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, &audit); err != nil {
		return model.Investment{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Investment{}, fmt.Errorf("failed to commit investment update: %w", err)
	}

	return investment, nil
}

// DeleteInvestment removes an investment and synthesizes a Deletion audit
// entry. The investment is loaded first to snapshot its name, so the audit
// trail stays readable after the hard delete. Nothing is written when the
// investment does not exist.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, investmentID string, deletedBy *string) error {
	investment, err := s.investmentRepo.GetInvestment(investmentID)
	if err != nil {
		return err
	}

	actor := investment.CreatedBy
	if deletedBy != nil {
		actor = *deletedBy
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := s.investmentRepo.WithTx(tx).DeleteInvestment(ctx, investmentID); err != nil {
		return err
	}

	audit := model.Transaction{
		Action:         model.ActionDeletion,
		InvestmentID:   investment.ID,
		InvestmentName: investment.Name,
		Amount:         decimal.Zero,
		Date:           model.Today(),
		UserID:         actor,
	}
	if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, &audit); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit investment deletion: %w", err)
	}

	return nil
}
