package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidInvestmentType contains the allowed investment type values.
var ValidInvestmentType = map[string]bool{
	"ETF": true, "Stock": true, "Bond": true, "Fund": true, "Crypto": true, "Other": true,
}

// Investment represents a tracked financial position jointly owned by the
// two participants in a fixed percentage split. The split percentages are
// whole percentage points and must sum to exactly 100.
//
// CurrentValue decreases only through recorded sales; increases happen via
// admin edits. CreatedBy is a soft user reference and is never FK-enforced.
type Investment struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol,omitempty"`
	Type           string          `json:"type"`
	InitialValue   decimal.Decimal `json:"initialValue"`
	CurrentValue   decimal.Decimal `json:"currentValue"`
	AllePercentage int             `json:"allePercentage"`
	AliPercentage  int             `json:"aliPercentage"`
	PurchaseDate   Date            `json:"purchaseDate"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}
