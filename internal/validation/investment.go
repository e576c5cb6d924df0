package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rvanleeuwen/investment-tracker/internal/api/request"
	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

// validatePercentagePair checks that both ownership percentages are whole
// percentage points in [0, 100] and that they sum to exactly 100.
// Integer arithmetic only; fractional percentages are not supported.
func validatePercentagePair(errors map[string]string, alle, ali int) {
	if alle < 0 || alle > 100 {
		errors["allePercentage"] = "allePercentage must be between 0 and 100"
	}
	if ali < 0 || ali > 100 {
		errors["aliPercentage"] = "aliPercentage must be between 0 and 100"
	}
	if len(errors) == 0 && alle+ali != 100 {
		errors["allePercentage"] = fmt.Sprintf("allePercentage and aliPercentage must sum to 100, got %d", alle+ali)
	}
}

// ValidateCreateInvestment validates an investment creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - type: Must be one of: ETF, Stock, Bond, Fund, Crypto, Other
//   - initialValue: Must be non-negative (currentValue too, if provided)
//   - allePercentage / aliPercentage: Whole points in [0, 100], summing to exactly 100
//   - purchaseDate: Must be in YYYY-MM-DD format
//   - createdBy: Must be non-empty
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.ValidInvestmentType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.InitialValue.IsNegative() {
		errors["initialValue"] = "initialValue cannot be negative"
	}
	if req.CurrentValue != nil && req.CurrentValue.IsNegative() {
		errors["currentValue"] = "currentValue cannot be negative"
	}

	validatePercentagePair(errors, req.AllePercentage, req.AliPercentage)

	if strings.TrimSpace(req.PurchaseDate) == "" {
		errors["purchaseDate"] = "purchaseDate is required"
	} else if _, err := time.Parse(model.DateFormat, req.PurchaseDate); err != nil {
		errors["purchaseDate"] = err.Error()
	}

	if strings.TrimSpace(req.CreatedBy) == "" {
		errors["createdBy"] = "createdBy is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestment validates an investment update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create. The percentage-sum invariant is not checked here:
// a partial update may supply only one of the pair, so the resulting pair
// is validated by the service against the stored record.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}

	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type cannot be empty"
		} else if !model.ValidInvestmentType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}

	if req.InitialValue != nil && req.InitialValue.IsNegative() {
		errors["initialValue"] = "initialValue cannot be negative"
	}
	if req.CurrentValue != nil && req.CurrentValue.IsNegative() {
		errors["currentValue"] = "currentValue cannot be negative"
	}

	if req.AllePercentage != nil && (*req.AllePercentage < 0 || *req.AllePercentage > 100) {
		errors["allePercentage"] = "allePercentage must be between 0 and 100"
	}
	if req.AliPercentage != nil && (*req.AliPercentage < 0 || *req.AliPercentage > 100) {
		errors["aliPercentage"] = "aliPercentage must be between 0 and 100"
	}

	if req.PurchaseDate != nil {
		if strings.TrimSpace(*req.PurchaseDate) == "" {
			errors["purchaseDate"] = "purchaseDate cannot be empty"
		} else if _, err := time.Parse(model.DateFormat, *req.PurchaseDate); err != nil {
			errors["purchaseDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
