package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

// SummaryService aggregates the portfolio state for the dashboard:
// totals, per-participant value splits, and sale proceeds.
type SummaryService struct {
	investmentRepo *repository.InvestmentRepository
	saleRepo       *repository.SaleRepository
}

// NewSummaryService creates a new SummaryService with the provided repository dependencies.
func NewSummaryService(
	investmentRepo *repository.InvestmentRepository,
	saleRepo *repository.SaleRepository,
) *SummaryService {
	return &SummaryService{
		investmentRepo: investmentRepo,
		saleRepo:       saleRepo,
	}
}

// GetSummary loads investments and sales concurrently and computes the
// aggregate view. Splits are exact decimal arithmetic over whole
// percentage points.
func (s *SummaryService) GetSummary(ctx context.Context) (model.PortfolioSummary, error) {
	var investments []model.Investment
	var sales []model.Sale

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		investments, err = s.investmentRepo.ListInvestments()
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.saleRepo.ListSales()
		return err
	})
	if err := g.Wait(); err != nil {
		return model.PortfolioSummary{}, err
	}

	summary := model.PortfolioSummary{
		InvestmentCount:   len(investments),
		SaleCount:         len(sales),
		TotalInitialValue: decimal.Zero,
		TotalCurrentValue: decimal.Zero,
		TotalSaleProceeds: decimal.Zero,
		CurrentValueSplit: model.ParticipantSplit{Alle: decimal.Zero, Ali: decimal.Zero},
		SaleProceedsSplit: model.ParticipantSplit{Alle: decimal.Zero, Ali: decimal.Zero},
	}

	for _, inv := range investments {
		summary.TotalInitialValue = summary.TotalInitialValue.Add(inv.InitialValue)
		summary.TotalCurrentValue = summary.TotalCurrentValue.Add(inv.CurrentValue)
		summary.CurrentValueSplit.Alle = summary.CurrentValueSplit.Alle.Add(percentageShare(inv.CurrentValue, inv.AllePercentage))
		summary.CurrentValueSplit.Ali = summary.CurrentValueSplit.Ali.Add(percentageShare(inv.CurrentValue, inv.AliPercentage))
	}

	for _, sale := range sales {
		summary.TotalSaleProceeds = summary.TotalSaleProceeds.Add(sale.SalePrice)
		summary.SaleProceedsSplit.Alle = summary.SaleProceedsSplit.Alle.Add(percentageShare(sale.SalePrice, sale.AllePercentage))
		summary.SaleProceedsSplit.Ali = summary.SaleProceedsSplit.Ali.Add(percentageShare(sale.SalePrice, sale.AliPercentage))
	}

	return summary, nil
}

// percentageShare returns value * percentage / 100 as an exact decimal.
func percentageShare(value decimal.Decimal, percentage int) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(int64(percentage))).Div(oneHundred)
}
