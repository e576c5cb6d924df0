package request

import "github.com/shopspring/decimal"

// CreateInvestmentRequest carries the body of POST /api/investments.
// CurrentValue is optional and defaults to InitialValue when omitted.
type CreateInvestmentRequest struct {
	Name           string           `json:"name"`
	Symbol         string           `json:"symbol,omitempty"`
	Type           string           `json:"type"`
	InitialValue   decimal.Decimal  `json:"initialValue"`
	CurrentValue   *decimal.Decimal `json:"currentValue,omitempty"`
	AllePercentage int              `json:"allePercentage"`
	AliPercentage  int              `json:"aliPercentage"`
	PurchaseDate   string           `json:"purchaseDate"`
	CreatedBy      string           `json:"createdBy"`
}

// UpdateInvestmentRequest carries the body of PUT /api/investments/{uuid}.
// All fields are optional; supplied fields are merged into the stored record
// and the resulting record is re-validated. UpdatedBy identifies the actor
// for the synthesized audit entry and falls back to the original creator.
type UpdateInvestmentRequest struct {
	Name           *string          `json:"name,omitempty"`
	Symbol         *string          `json:"symbol,omitempty"`
	Type           *string          `json:"type,omitempty"`
	InitialValue   *decimal.Decimal `json:"initialValue,omitempty"`
	CurrentValue   *decimal.Decimal `json:"currentValue,omitempty"`
	AllePercentage *int             `json:"allePercentage,omitempty"`
	AliPercentage  *int             `json:"aliPercentage,omitempty"`
	PurchaseDate   *string          `json:"purchaseDate,omitempty"`
	UpdatedBy      *string          `json:"updatedBy,omitempty"`
}

// DeleteInvestmentRequest carries the optional body of DELETE /api/investments/{uuid}.
type DeleteInvestmentRequest struct {
	DeletedBy *string `json:"deletedBy,omitempty"`
}
