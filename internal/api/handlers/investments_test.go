package handlers_test

import (
	"database/sql"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rvanleeuwen/investment-tracker/internal/api/handlers"
	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/testutil"
)

func validCreateRequest() request.CreateInvestmentRequest {
	return request.CreateInvestmentRequest{
		Name:           "Test ETF",
		Symbol:         "TEST",
		Type:           "ETF",
		InitialValue:   decimal.NewFromInt(1000),
		AllePercentage: 60,
		AliPercentage:  40,
		PurchaseDate:   "2024-03-01",
		CreatedBy:      testutil.MakeID(),
	}
}

// lastTransaction returns the most recently inserted audit entry.
func lastTransaction(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()
	var tx model.Transaction
	var amount string
	var date time.Time
	err := db.QueryRow(`
		SELECT action, investment_id, investment_name, amount, date, user_id
		FROM "transaction" ORDER BY created_at DESC, rowid DESC LIMIT 1
	`).Scan(&tx.Action, &tx.InvestmentID, &tx.InvestmentName, &amount, &date, &tx.UserID)
	if err != nil {
		t.Fatalf("Failed to read last transaction: %v", err)
	}
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("Failed to parse transaction amount: %v", err)
	}
	tx.Date = model.NewDate(date)
	return tx
}

// TestInvestmentHandler_ListInvestments tests the GET /api/investments endpoint.
//
// WHY: This is the primary endpoint for the portfolio view. The frontend
// depends on it returning a JSON array (empty when there is nothing) with
// exact decimal amounts.
func TestInvestmentHandler_ListInvestments(t *testing.T) {
	t.Run("GET /api/investments returns 200 with empty array", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		req := httptest.NewRequest(http.MethodGet, "/api/investments", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.ListInvestments(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Investment
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d items", len(response))
		}
	})

	t.Run("GET /api/investments returns all investments", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		i1 := testutil.CreateInvestment(t, db, "Investment One")
		i2 := testutil.CreateInvestment(t, db, "Investment Two")

		req := httptest.NewRequest(http.MethodGet, "/api/investments", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.ListInvestments(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Investment
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Fatalf("Expected 2 investments, got %d", len(response))
		}
		if response[0].ID != i1.ID {
			t.Errorf("Expected first investment ID %s, got %s", i1.ID, response[0].ID)
		}
		if response[1].ID != i2.ID {
			t.Errorf("Expected second investment ID %s, got %s", i2.ID, response[1].ID)
		}
		if !response[0].CurrentValue.Equal(i1.CurrentValue) {
			t.Errorf("Expected current value %s, got %s", i1.CurrentValue, response[0].CurrentValue)
		}
	})
}

// TestInvestmentHandler_GetInvestment tests the GET /api/investments/{uuid} endpoint.
//
// WHY: Reads must be side-effect free and repeatable; a read of a missing
// record must be a clean 404.
func TestInvestmentHandler_GetInvestment(t *testing.T) {
	t.Run("returns the investment and is idempotent", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		investment := testutil.CreateInvestment(t, db, "Stable Investment")

		var bodies []string
		for i := 0; i < 2; i++ {
			req := testutil.NewRequestWithURLParams(http.MethodGet,
				"/api/investments/"+investment.ID,
				map[string]string{"uuid": investment.ID})
			w := httptest.NewRecorder()

			// Execute
			handler.GetInvestment(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			bodies = append(bodies, w.Body.String())
		}

		// Assert both reads returned the identical representation
		if bodies[0] != bodies[1] {
			t.Errorf("Repeated reads differ:\n%s\n%s", bodies[0], bodies[1])
		}

		var response model.Investment
		if err := json.Unmarshal([]byte(bodies[0]), &response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID != investment.ID {
			t.Errorf("Expected ID %s, got %s", investment.ID, response.ID)
		}
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/investments/"+missing, map[string]string{"uuid": missing})
		w := httptest.NewRecorder()

		// Execute
		handler.GetInvestment(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestInvestmentHandler_CreateInvestment tests the POST /api/investments endpoint.
//
// WHY: Creation must enforce the percentage-sum invariant and synthesize
// exactly one Purchase audit entry carrying the initial value, the purchase
// date, and the creator.
func TestInvestmentHandler_CreateInvestment(t *testing.T) {
	t.Run("valid request returns 201 and appends a Purchase transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		createReq := validCreateRequest()
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/investments", createReq)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateInvestment(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Investment
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.ID == "" {
			t.Error("Expected a generated ID")
		}
		if !response.CurrentValue.Equal(createReq.InitialValue) {
			t.Errorf("Expected current value to default to initial value %s, got %s",
				createReq.InitialValue, response.CurrentValue)
		}

		testutil.AssertRowCount(t, db, "investment", 1)
		testutil.AssertRowCount(t, db, "transaction", 1)

		audit := lastTransaction(t, db)
		if audit.Action != model.ActionPurchase {
			t.Errorf("Expected Purchase transaction, got %s", audit.Action)
		}
		if audit.InvestmentID != response.ID {
			t.Errorf("Expected transaction investment ID %s, got %s", response.ID, audit.InvestmentID)
		}
		if !audit.Amount.Equal(createReq.InitialValue) {
			t.Errorf("Expected transaction amount %s, got %s", createReq.InitialValue, audit.Amount)
		}
		if audit.Date.String() != createReq.PurchaseDate {
			t.Errorf("Expected transaction date %s, got %s", createReq.PurchaseDate, audit.Date)
		}
		if audit.UserID != createReq.CreatedBy {
			t.Errorf("Expected transaction user %s, got %s", createReq.CreatedBy, audit.UserID)
		}
	})

	t.Run("explicit currentValue overrides the default", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		createReq := validCreateRequest()
		current := decimal.NewFromInt(1200)
		createReq.CurrentValue = &current

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/investments", createReq)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateInvestment(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Investment
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !response.CurrentValue.Equal(current) {
			t.Errorf("Expected current value %s, got %s", current, response.CurrentValue)
		}
	})

	t.Run("randomized percentage pairs summing to 100 are accepted", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		for i := 0; i < 25; i++ {
			createReq := validCreateRequest()
			createReq.Name = testutil.MakeInvestmentName("Split")
			createReq.AllePercentage = rand.Intn(101)
			createReq.AliPercentage = 100 - createReq.AllePercentage

			req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/investments", createReq)
			w := httptest.NewRecorder()

			// Execute
			handler.CreateInvestment(w, req)

			// Assert
			if w.Code != http.StatusCreated {
				t.Fatalf("Pair %d/%d: expected status 201, got %d: %s",
					createReq.AllePercentage, createReq.AliPercentage, w.Code, w.Body.String())
			}
		}
	})

	t.Run("randomized percentage pairs not summing to 100 are rejected", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		for i := 0; i < 25; i++ {
			createReq := validCreateRequest()
			createReq.AllePercentage = rand.Intn(101)
			createReq.AliPercentage = rand.Intn(101)
			if createReq.AllePercentage+createReq.AliPercentage == 100 {
				continue
			}

			req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/investments", createReq)
			w := httptest.NewRecorder()

			// Execute
			handler.CreateInvestment(w, req)

			// Assert
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Pair %d/%d: expected status 400, got %d",
					createReq.AllePercentage, createReq.AliPercentage, w.Code)
			}
		}

		// Nothing may have been written for rejected pairs
		testutil.AssertRowCount(t, db, "investment", 0)
		testutil.AssertRowCount(t, db, "transaction", 0)
	})

	t.Run("invalid type returns 400 with field error", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		createReq := validCreateRequest()
		createReq.Type = "Lottery"

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/investments", createReq)
		w := httptest.NewRecorder()

		// Execute
		handler.CreateInvestment(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var errResponse struct {
			Message string `json:"message"`
			Errors  []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"errors"`
		}
		if err := json.NewDecoder(w.Body).Decode(&errResponse); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		found := false
		for _, fe := range errResponse.Errors {
			if fe.Field == "type" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a field error for 'type', got %+v", errResponse.Errors)
		}
	})
}

// TestInvestmentHandler_UpdateInvestment tests the PUT /api/investments/{uuid} endpoint.
//
// WHY: Updates are partial. The percentage invariant has to hold on the
// RESULTING record, so a single-field percentage change is checked against
// the stored companion value, and every accepted edit appends an Edit
// audit entry carrying the post-edit current value.
func TestInvestmentHandler_UpdateInvestment(t *testing.T) {
	t.Run("partial update keeping the pair at 100 succeeds", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		investment := testutil.NewInvestment().WithPercentages(60, 40).Build(t, db)

		// ali 40 stays; alle 60 -> 60 is the only value keeping the sum at 100
		alle := 60
		updateReq := request.UpdateInvestmentRequest{AllePercentage: &alle}
		req := testutil.NewRequestWithURLParamsAndBody(t, http.MethodPut,
			"/api/investments/"+investment.ID,
			map[string]string{"uuid": investment.ID}, updateReq)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateInvestment(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("single-field percentage update breaking the invariant returns 400", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		investment := testutil.NewInvestment().WithPercentages(60, 40).Build(t, db)

		// 50 + stored 40 = 90
		alle := 50
		updateReq := request.UpdateInvestmentRequest{AllePercentage: &alle}
		req := testutil.NewRequestWithURLParamsAndBody(t, http.MethodPut,
			"/api/investments/"+investment.ID,
			map[string]string{"uuid": investment.ID}, updateReq)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateInvestment(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		// Rejected update writes nothing
		testutil.AssertRowCount(t, db, "transaction", 0)
	})

	t.Run("updating both percentages to a new valid pair succeeds", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		investment := testutil.NewInvestment().WithPercentages(60, 40).Build(t, db)

		alle, ali := 70, 30
		updateReq := request.UpdateInvestmentRequest{AllePercentage: &alle, AliPercentage: &ali}
		req := testutil.NewRequestWithURLParamsAndBody(t, http.MethodPut,
			"/api/investments/"+investment.ID,
			map[string]string{"uuid": investment.ID}, updateReq)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateInvestment(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Investment
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.AllePercentage != 70 || response.AliPercentage != 30 {
			t.Errorf("Expected split 70/30, got %d/%d", response.AllePercentage, response.AliPercentage)
		}
	})

	t.Run("update appends an Edit transaction with the new current value", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		investment := testutil.NewInvestment().Build(t, db)

		current := decimal.NewFromInt(1500)
		actor := testutil.MakeID()
		updateReq := request.UpdateInvestmentRequest{CurrentValue: &current, UpdatedBy: &actor}
		req := testutil.NewRequestWithURLParamsAndBody(t, http.MethodPut,
			"/api/investments/"+investment.ID,
			map[string]string{"uuid": investment.ID}, updateReq)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateInvestment(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "transaction", 1)
		audit := lastTransaction(t, db)
		if audit.Action != model.ActionEdit {
			t.Errorf("Expected Edit transaction, got %s", audit.Action)
		}
		if !audit.Amount.Equal(current) {
			t.Errorf("Expected transaction amount %s, got %s", current, audit.Amount)
		}
		if audit.UserID != actor {
			t.Errorf("Expected transaction user %s, got %s", actor, audit.UserID)
		}
	})

	t.Run("unknown ID returns 404", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		missing := testutil.MakeID()
		name := "Renamed"
		updateReq := request.UpdateInvestmentRequest{Name: &name}
		req := testutil.NewRequestWithURLParamsAndBody(t, http.MethodPut,
			"/api/investments/"+missing, map[string]string{"uuid": missing}, updateReq)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateInvestment(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestInvestmentHandler_DeleteInvestment tests the DELETE /api/investments/{uuid} endpoint.
//
// WHY: Deletion removes the row but must leave a Deletion audit entry with
// the name snapshot; a delete of a missing investment is a 404 that writes
// nothing at all.
func TestInvestmentHandler_DeleteInvestment(t *testing.T) {
	t.Run("delete removes the investment and appends a Deletion transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		investment := testutil.NewInvestment().WithName("Doomed Investment").Build(t, db)

		actor := testutil.MakeID()
		req := testutil.NewRequestWithURLParamsAndBody(t, http.MethodDelete,
			"/api/investments/"+investment.ID,
			map[string]string{"uuid": investment.ID},
			request.DeleteInvestmentRequest{DeletedBy: &actor})
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteInvestment(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "investment", 0)
		testutil.AssertRowCount(t, db, "transaction", 1)

		audit := lastTransaction(t, db)
		if audit.Action != model.ActionDeletion {
			t.Errorf("Expected Deletion transaction, got %s", audit.Action)
		}
		if audit.InvestmentName != "Doomed Investment" {
			t.Errorf("Expected name snapshot 'Doomed Investment', got %q", audit.InvestmentName)
		}
		if !audit.Amount.IsZero() {
			t.Errorf("Expected zero amount, got %s", audit.Amount)
		}
		if audit.UserID != actor {
			t.Errorf("Expected transaction user %s, got %s", actor, audit.UserID)
		}
	})

	t.Run("delete without a body falls back to the creator as actor", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))
		creator := testutil.MakeID()
		investment := testutil.NewInvestment().WithCreatedBy(creator).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/investments/"+investment.ID, map[string]string{"uuid": investment.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteInvestment(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		audit := lastTransaction(t, db)
		if audit.UserID != creator {
			t.Errorf("Expected actor to fall back to creator %s, got %s", creator, audit.UserID)
		}
	})

	t.Run("delete of a missing investment returns 404 and writes no audit entry", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvestmentHandler(testutil.NewTestInvestmentService(t, db))

		missing := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete,
			"/api/investments/"+missing, map[string]string{"uuid": missing})
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteInvestment(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "transaction", 0)
	})
}
