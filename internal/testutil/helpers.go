package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rvanleeuwen/investment-tracker/internal/repository"
	"github.com/rvanleeuwen/investment-tracker/internal/service"
	"github.com/rvanleeuwen/investment-tracker/internal/session"
)

// NewTestSessionManager creates a session manager with an ephemeral key and
// a generous TTL for tests.
func NewTestSessionManager(t *testing.T) *session.Manager {
	t.Helper()

	sessions, err := session.NewManager("", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}
	return sessions
}

func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	return service.NewUserService(
		userRepo,
		NewTestSessionManager(t),
	)
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewInvestmentService(
		db,
		investmentRepo,
		transactionRepo,
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
	)
}

func NewTestSaleService(t *testing.T, db *sql.DB) *service.SaleService {
	t.Helper()

	saleRepo := repository.NewSaleRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewSaleService(
		db,
		saleRepo,
		investmentRepo,
		transactionRepo,
	)
}

func NewTestSummaryService(t *testing.T, db *sql.DB) *service.SummaryService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	return service.NewSummaryService(
		investmentRepo,
		saleRepo,
	)
}

func NewTestSeedService(t *testing.T, db *sql.DB, adminPassword string) *service.SeedService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	return service.NewSeedService(
		userRepo,
		NewTestInvestmentService(t, db),
		adminPassword,
		zerolog.Nop(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeUsername generates a unique username for testing.
//
// Example usage:
//
//	username := testutil.MakeUsername("alle")
//	// Returns: "alle-a1b2c3"
func MakeUsername(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "-" + randomAlphanumeric(6)
}

// MakeInvestmentName generates a unique investment name for testing.
//
// Example usage:
//
//	name := testutil.MakeInvestmentName("Tech Stock")
//	// Returns: "Tech Stock XYZ789"
func MakeInvestmentName(base string) string {
	if base == "" {
		base = "Investment"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
