package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction actions. One transaction is synthesized server-side for every
// mutating investment or sale operation.
const (
	ActionPurchase = "Purchase"
	ActionSale     = "Sale"
	ActionEdit     = "Edit"
	ActionDeletion = "Deletion"
)

// Transaction is an append-only audit-log entry. Once created it is never
// mutated or deleted. InvestmentName is a denormalized snapshot so the log
// stays readable after the investment itself is deleted; InvestmentID may
// dangle for the same reason.
type Transaction struct {
	ID             string          `json:"id"`
	Action         string          `json:"action"`
	InvestmentID   string          `json:"investmentId"`
	InvestmentName string          `json:"investmentName"`
	Amount         decimal.Decimal `json:"amount"`
	Date           Date            `json:"date"`
	UserID         string          `json:"userId"`
	CreatedAt      time.Time       `json:"createdAt"`
}
