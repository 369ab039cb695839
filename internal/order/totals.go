package order

import (
	"restopos/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are derived from the order lines on every call; nothing is cached.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals returns subtotal, tax and total for lines. taxRate is a
// percentage and is ignored when taxEnabled is false.
func ComputeTotals(lines []models.OrderLineItem, taxEnabled bool, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}

	tax := decimal.Zero
	if taxEnabled {
		tax = subtotal.Mul(taxRate).Div(hundred)
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
