package model

import "github.com/shopspring/decimal"

// ParticipantSplit holds one participant's share of a total, derived from
// whole-percentage-point ownership splits.
type ParticipantSplit struct {
	Alle decimal.Decimal `json:"alle"`
	Ali  decimal.Decimal `json:"ali"`
}

// PortfolioSummary aggregates the current state of the shared portfolio:
// totals across all investments, the per-participant value split, and the
// total sale proceeds recorded so far.
type PortfolioSummary struct {
	InvestmentCount   int              `json:"investmentCount"`
	SaleCount         int              `json:"saleCount"`
	TotalInitialValue decimal.Decimal  `json:"totalInitialValue"`
	TotalCurrentValue decimal.Decimal  `json:"totalCurrentValue"`
	CurrentValueSplit ParticipantSplit `json:"currentValueSplit"`
	TotalSaleProceeds decimal.Decimal  `json:"totalSaleProceeds"`
	SaleProceedsSplit ParticipantSplit `json:"saleProceedsSplit"`
}
