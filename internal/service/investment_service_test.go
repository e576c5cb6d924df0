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

func sampleCreateRequest() request.CreateInvestmentRequest {
	return request.CreateInvestmentRequest{
		Name:           "Service Test ETF",
		Symbol:         "SVC",
		Type:           "ETF",
		InitialValue:   decimal.NewFromInt(2000),
		AllePercentage: 60,
		AliPercentage:  40,
		PurchaseDate:   "2024-02-10",
		CreatedBy:      testutil.MakeID(),
	}
}

// TestInvestmentService_AuditTrail tests transaction synthesis across the
// investment lifecycle.
//
// WHY: The append-only audit log is only trustworthy if every successful
// mutation appends exactly one entry and every rejected mutation appends
// none. This walks create, update, and delete against the same store and
// counts along the way.
func TestInvestmentService_AuditTrail(t *testing.T) {
	t.Run("each mutation appends exactly one transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		ctx := context.Background()

		// Create
		investment, err := svc.CreateInvestment(ctx, sampleCreateRequest())
		if err != nil {
			t.Fatalf("CreateInvestment failed: %v", err)
		}
		testutil.AssertRowCount(t, db, "transaction", 1)

		// Update
		current := decimal.NewFromInt(2500)
		_, err = svc.UpdateInvestment(ctx, investment.ID, request.UpdateInvestmentRequest{
			CurrentValue: &current,
		})
		if err != nil {
			t.Fatalf("UpdateInvestment failed: %v", err)
		}
		testutil.AssertRowCount(t, db, "transaction", 2)

		// Delete
		if err := svc.DeleteInvestment(ctx, investment.ID, nil); err != nil {
			t.Fatalf("DeleteInvestment failed: %v", err)
		}
		testutil.AssertRowCount(t, db, "transaction", 3)
		testutil.AssertRowCount(t, db, "investment", 0)
	})

	t.Run("rejected create writes neither investment nor transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		req := sampleCreateRequest()
		req.AllePercentage = 55
		req.AliPercentage = 55

		// Execute
		_, err := svc.CreateInvestment(context.Background(), req)

		// Assert
		if !errors.Is(err, apperrors.ErrPercentageSum) {
			t.Fatalf("Expected ErrPercentageSum, got %v", err)
		}
		testutil.AssertRowCount(t, db, "investment", 0)
		testutil.AssertRowCount(t, db, "transaction", 0)
	})

	t.Run("delete of a missing investment writes nothing", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		// Execute
		err := svc.DeleteInvestment(context.Background(), testutil.MakeID(), nil)

		// Assert
		if !errors.Is(err, apperrors.ErrInvestmentNotFound) {
			t.Fatalf("Expected ErrInvestmentNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "transaction", 0)
	})
}

// TestInvestmentService_UpdateInvestment tests the merge semantics of
// partial updates.
func TestInvestmentService_UpdateInvestment(t *testing.T) {
	t.Run("unsupplied fields keep their stored values", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		ctx := context.Background()

		created, err := svc.CreateInvestment(ctx, sampleCreateRequest())
		if err != nil {
			t.Fatalf("CreateInvestment failed: %v", err)
		}

		name := "Renamed ETF"

		// Execute
		updated, err := svc.UpdateInvestment(ctx, created.ID, request.UpdateInvestmentRequest{
			Name: &name,
		})
		if err != nil {
			t.Fatalf("UpdateInvestment failed: %v", err)
		}

		// Assert
		if updated.Name != "Renamed ETF" {
			t.Errorf("Expected updated name, got %q", updated.Name)
		}
		if updated.Symbol != created.Symbol {
			t.Errorf("Expected symbol untouched, got %q", updated.Symbol)
		}
		if !updated.InitialValue.Equal(created.InitialValue) {
			t.Errorf("Expected initial value untouched, got %s", updated.InitialValue)
		}
		if updated.AllePercentage != 60 || updated.AliPercentage != 40 {
			t.Errorf("Expected split untouched at 60/40, got %d/%d",
				updated.AllePercentage, updated.AliPercentage)
		}
	})

	t.Run("resulting percentage pair is validated against the stored companion", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		ctx := context.Background()

		created, err := svc.CreateInvestment(ctx, sampleCreateRequest())
		if err != nil {
			t.Fatalf("CreateInvestment failed: %v", err)
		}

		// stored ali is 40; 70 + 40 != 100
		alle := 70

		// Execute
		_, err = svc.UpdateInvestment(ctx, created.ID, request.UpdateInvestmentRequest{
			AllePercentage: &alle,
		})

		// Assert
		if !errors.Is(err, apperrors.ErrPercentageSum) {
			t.Fatalf("Expected ErrPercentageSum, got %v", err)
		}

		// The stored record is untouched
		stored, err := svc.GetInvestment(created.ID)
		if err != nil {
			t.Fatalf("GetInvestment failed: %v", err)
		}
		if stored.AllePercentage != 60 || stored.AliPercentage != 40 {
			t.Errorf("Expected stored split 60/40, got %d/%d",
				stored.AllePercentage, stored.AliPercentage)
		}
	})

	t.Run("audit actor prefers updatedBy over the creator", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		ctx := context.Background()

		created, err := svc.CreateInvestment(ctx, sampleCreateRequest())
		if err != nil {
			t.Fatalf("CreateInvestment failed: %v", err)
		}

		actor := testutil.MakeID()
		current := decimal.NewFromInt(3000)

		// Execute
		if _, err := svc.UpdateInvestment(ctx, created.ID, request.UpdateInvestmentRequest{
			CurrentValue: &current,
			UpdatedBy:    &actor,
		}); err != nil {
			t.Fatalf("UpdateInvestment failed: %v", err)
		}

		// Assert
		var userID string
		err = db.QueryRow(`
			SELECT user_id FROM "transaction" WHERE action = 'Edit'
		`).Scan(&userID)
		if err != nil {
			t.Fatalf("Failed to read Edit transaction: %v", err)
		}
		if userID != actor {
			t.Errorf("Expected audit actor %s, got %s", actor, userID)
		}
	})
}
