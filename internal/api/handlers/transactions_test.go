package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rvanleeuwen/investment-tracker/internal/api/handlers"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/testutil"
)

// TestTransactionHandler_ListTransactions tests the GET /api/transactions endpoint.
//
// WHY: The audit log is the system's memory. Ordering is part of the
// contract: newest date first, same-day entries in the order they were
// appended, and an empty log serializes as an empty array.
func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("GET /api/transactions returns 200 with empty array", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.ListTransactions(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if body := w.Body.String(); body != "[]\n" && body != "[]" {
			t.Errorf("Expected empty JSON array, got %q", body)
		}
	})

	t.Run("transactions are sorted descending by date with same-day insertion order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		investmentID := testutil.MakeID()

		day := model.NewDate(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

		older := testutil.NewTransaction(investmentID).
			WithDate(model.NewDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))).
			Build(t, db)
		sameDayFirst := testutil.NewTransaction(investmentID).
			WithAction(model.ActionEdit).
			WithDate(day).
			WithCreatedAt(base).
			Build(t, db)
		sameDaySecond := testutil.NewTransaction(investmentID).
			WithAction(model.ActionSale).
			WithDate(day).
			WithCreatedAt(base.Add(time.Minute)).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.ListTransactions(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response []model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(response))
		}
		if response[0].ID != sameDayFirst.ID {
			t.Errorf("Expected first same-day entry first, got %s", response[0].Action)
		}
		if response[1].ID != sameDaySecond.ID {
			t.Errorf("Expected second same-day entry second, got %s", response[1].Action)
		}
		if response[2].ID != older.ID {
			t.Errorf("Expected oldest entry last, got %s", response[2].Action)
		}
	})

	t.Run("database failure returns 500", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.ListTransactions(w, req)

		// Assert
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})
}

// TestTransactionHandler_GetTransaction tests the GET /api/transactions/{uuid} endpoint.
func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns the transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))
		transaction := testutil.NewTransaction(testutil.MakeID()).
			WithInvestmentName("Audited Investment").
			Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/transactions/"+transaction.ID, map[string]string{"uuid": transaction.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.GetTransaction(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID != transaction.ID {
			t.Errorf("Expected ID %s, got %s", transaction.ID, response.ID)
		}
		if response.InvestmentName != "Audited Investment" {
			t.Errorf("Expected name snapshot 'Audited Investment', got %q", response.InvestmentName)
		}
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/transactions/"+missing, map[string]string{"uuid": missing})
		w := httptest.NewRecorder()

		// Execute
		handler.GetTransaction(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
