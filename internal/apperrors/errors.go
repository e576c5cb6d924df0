package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSaleNotFound indicates that a sale with the given ID does not exist.
	ErrSaleNotFound = errors.New("sale not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrPercentageSum indicates that the two ownership percentages do not sum
	// to exactly 100 whole percentage points.
	ErrPercentageSum = errors.New("ownership percentages must sum to 100")

	// ErrSaleExceedsValue indicates that a sale cannot be completed because the
	// sale amount is larger than the investment's current value.
	ErrSaleExceedsValue = errors.New("sale amount exceeds current value")

	// ErrDuplicateUsername indicates that a user with the same username already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// Access control errors.
var (
	// ErrInvalidCredentials indicates a failed username lookup or password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession indicates a missing, malformed, or expired session token.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrForbidden indicates that the caller's role lacks the required capability.
	ErrForbidden = errors.New("insufficient permissions")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveUsers        = errors.New("failed to retrieve users")
	ErrFailedToRetrieveInvestments  = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveInvestment   = errors.New("failed to retrieve investment")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveSales        = errors.New("failed to retrieve sales")
	ErrFailedToRetrieveSale         = errors.New("failed to retrieve sale")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)
