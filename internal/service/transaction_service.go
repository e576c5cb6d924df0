package service

import (
	"github.com/rvanleeuwen/investment-tracker/internal/model"
	"github.com/rvanleeuwen/investment-tracker/internal/repository"
)

// TransactionService exposes read access to the audit log. Transactions are
// synthesized by the investment and sale services; there is deliberately no
// mutating API here.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependency.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// ListTransactions retrieves all transactions sorted descending by transaction date.
func (s *TransactionService) ListTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.ListTransactions()
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}
