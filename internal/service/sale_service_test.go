package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/apperrors"
	"github.com/rvanleeuwen/investment-tracker/internal/testutil"
)

func sampleSaleRequest(investmentID string, amount decimal.Decimal) request.CreateSaleRequest {
	return request.CreateSaleRequest{
		InvestmentID:   investmentID,
		SaleAmount:     amount,
		SalePrice:      amount,
		AllePercentage: 50,
		AliPercentage:  50,
		SaleDate:       "2024-07-01",
		CreatedBy:      testutil.MakeID(),
	}
}

// TestSaleService_CreateSale tests the sale bounds check and the exactness
// of the value reduction.
//
// WHY: A sale reduces the investment's current value by exactly the sale
// amount. With fractional currency amounts this only holds under decimal
// arithmetic; a float subtraction would drift.
func TestSaleService_CreateSale(t *testing.T) {
	t.Run("current value is reduced by exactly the sale amount", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSaleService(t, db)

		initial, _ := decimal.NewFromString("100.50")
		amount, _ := decimal.NewFromString("0.25")
		investment := testutil.NewInvestment().WithInitialValue(initial).Build(t, db)

		// Execute
		if _, err := svc.CreateSale(context.Background(), sampleSaleRequest(investment.ID, amount)); err != nil {
			t.Fatalf("CreateSale failed: %v", err)
		}

		// Assert
		stored, err := testutil.NewTestInvestmentService(t, db).GetInvestment(investment.ID)
		if err != nil {
			t.Fatalf("GetInvestment failed: %v", err)
		}
		expected, _ := decimal.NewFromString("100.25")
		if !stored.CurrentValue.Equal(expected) {
			t.Errorf("Expected current value 100.25, got %s", stored.CurrentValue)
		}
	})

	t.Run("zero-amount sale is permitted and leaves the value unchanged", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSaleService(t, db)
		investment := testutil.NewInvestment().
			WithInitialValue(decimal.NewFromInt(500)).
			Build(t, db)

		// Execute
		if _, err := svc.CreateSale(context.Background(), sampleSaleRequest(investment.ID, decimal.Zero)); err != nil {
			t.Fatalf("CreateSale failed: %v", err)
		}

		// Assert
		stored, err := testutil.NewTestInvestmentService(t, db).GetInvestment(investment.ID)
		if err != nil {
			t.Fatalf("GetInvestment failed: %v", err)
		}
		if !stored.CurrentValue.Equal(decimal.NewFromInt(500)) {
			t.Errorf("Expected current value unchanged at 500, got %s", stored.CurrentValue)
		}
		testutil.AssertRowCount(t, db, "sale", 1)
		testutil.AssertRowCount(t, db, "transaction", 1)
	})

	t.Run("sale exceeding the current value leaves no rows behind", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSaleService(t, db)
		investment := testutil.NewInvestment().
			WithInitialValue(decimal.NewFromInt(100)).
			Build(t, db)

		// Execute
		_, err := svc.CreateSale(context.Background(),
			sampleSaleRequest(investment.ID, decimal.NewFromInt(101)))

		// Assert
		if !errors.Is(err, apperrors.ErrSaleExceedsValue) {
			t.Fatalf("Expected ErrSaleExceedsValue, got %v", err)
		}
		testutil.AssertRowCount(t, db, "sale", 0)
		testutil.AssertRowCount(t, db, "transaction", 0)
	})

	t.Run("sale against a missing investment returns ErrInvestmentNotFound", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSaleService(t, db)

		// Execute
		_, err := svc.CreateSale(context.Background(),
			sampleSaleRequest(testutil.MakeID(), decimal.NewFromInt(10)))

		// Assert
		if !errors.Is(err, apperrors.ErrInvestmentNotFound) {
			t.Fatalf("Expected ErrInvestmentNotFound, got %v", err)
		}
	})

	t.Run("successive sales each deduct from the value at call time", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSaleService(t, db)
		ctx := context.Background()
		investment := testutil.NewInvestment().
			WithInitialValue(decimal.NewFromInt(1000)).
			Build(t, db)

		// Execute: 1000 -> 600 -> 600 rejected overdraw -> 0
		if _, err := svc.CreateSale(ctx, sampleSaleRequest(investment.ID, decimal.NewFromInt(400))); err != nil {
			t.Fatalf("First sale failed: %v", err)
		}
		if _, err := svc.CreateSale(ctx, sampleSaleRequest(investment.ID, decimal.NewFromInt(700))); !errors.Is(err, apperrors.ErrSaleExceedsValue) {
			t.Fatalf("Expected ErrSaleExceedsValue for overdraw, got %v", err)
		}
		if _, err := svc.CreateSale(ctx, sampleSaleRequest(investment.ID, decimal.NewFromInt(600))); err != nil {
			t.Fatalf("Final sale failed: %v", err)
		}

		// Assert
		stored, err := testutil.NewTestInvestmentService(t, db).GetInvestment(investment.ID)
		if err != nil {
			t.Fatalf("GetInvestment failed: %v", err)
		}
		if !stored.CurrentValue.IsZero() {
			t.Errorf("Expected current value exactly 0, got %s", stored.CurrentValue)
		}
		testutil.AssertRowCount(t, db, "sale", 2)
		testutil.AssertRowCount(t, db, "transaction", 2)
	})
}
