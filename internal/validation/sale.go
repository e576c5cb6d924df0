package validation

import (
	"strings"
	"time"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

// ValidateCreateSale validates a sale creation request.
//
// Required fields:
//   - investmentId: Must be a valid UUID
//   - saleAmount / salePrice: Must be non-negative
//   - allePercentage / aliPercentage: Whole points in [0, 100], summing to exactly 100
//   - saleDate: Must be in YYYY-MM-DD format
//   - createdBy: Must be non-empty
//
// Whether saleAmount fits within the investment's current value is a
// business rule checked by the sale service, not here.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateSale(req request.CreateSaleRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.InvestmentID); err != nil {
		errors["investmentId"] = err.Error()
	}

	if req.SaleAmount.IsNegative() {
		errors["saleAmount"] = "saleAmount cannot be negative"
	}
	if req.SalePrice.IsNegative() {
		errors["salePrice"] = "salePrice cannot be negative"
	}

	validatePercentagePair(errors, req.AllePercentage, req.AliPercentage)

	if strings.TrimSpace(req.SaleDate) == "" {
		errors["saleDate"] = "saleDate is required"
	} else if _, err := time.Parse(model.DateFormat, req.SaleDate); err != nil {
		errors["saleDate"] = err.Error()
	}

	if strings.TrimSpace(req.CreatedBy) == "" {
		errors["createdBy"] = "createdBy is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
