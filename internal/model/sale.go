package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records a partial or full liquidation of an investment's current
// value. SaleAmount is the portion of value liquidated, SalePrice the total
// proceeds. The sale's percentages describe only how the proceeds are split
// and are independent of the investment's standing ownership split.
type Sale struct {
	ID             string          `json:"id"`
	InvestmentID   string          `json:"investmentId"`
	InvestmentName string          `json:"investmentName"`
	SaleAmount     decimal.Decimal `json:"saleAmount"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	AllePercentage int             `json:"allePercentage"`
	AliPercentage  int             `json:"aliPercentage"`
	SaleDate       Date            `json:"saleDate"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}
