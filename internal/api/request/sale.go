package request

import "github.com/shopspring/decimal"

// CreateSaleRequest carries the body of POST /api/sales. The percentages
// describe how the proceeds are split and must sum to exactly 100.
type CreateSaleRequest struct {
	InvestmentID   string          `json:"investmentId"`
	SaleAmount     decimal.Decimal `json:"saleAmount"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	AllePercentage int             `json:"allePercentage"`
	AliPercentage  int             `json:"aliPercentage"`
	SaleDate       string          `json:"saleDate"`
	CreatedBy      string          `json:"createdBy"`
}
