// Package payment settles an order total: cash change, split-payment
// reconciliation and receipt finalization.
package payment

import (
	"strings"

	"restopos/internal/models"

	"github.com/shopspring/decimal"
)

// FallbackMethod is offered when no payment types are configured.
const FallbackMethod = "Cash"

// Epsilon is the tolerance within which split rows balance the total. The
// comparison is strict: a remaining amount of exactly 0.01 is unbalanced.
var Epsilon = decimal.RequireFromString("0.01")

// Reconciliation is the state of a split payment against the amount due.
type Reconciliation struct {
	TotalEntered decimal.Decimal `json:"total_entered"`
	Remaining    decimal.Decimal `json:"remaining"`
	Valid        bool            `json:"valid"`
}

// CashChange returns tendered minus total. Under-payment yields negative
// change and is recorded as is.
func CashChange(tendered, total decimal.Decimal) decimal.Decimal {
	return tendered.Sub(total)
}

// Reconcile checks split rows against total. The split is valid only when
// the rounded remaining amount is within Epsilon of zero and every row has a
// method and a positive amount.
func Reconcile(total decimal.Decimal, rows []models.SplitPaymentDetail) Reconciliation {
	entered := decimal.Zero
	rowsOK := len(rows) > 0
	for _, r := range rows {
		entered = entered.Add(r.Amount)
		if !r.Amount.IsPositive() || strings.TrimSpace(r.Method) == "" {
			rowsOK = false
		}
	}

	remaining := total.Sub(entered).Round(2)
	return Reconciliation{
		TotalEntered: entered,
		Remaining:    remaining,
		Valid:        rowsOK && remaining.Abs().LessThan(Epsilon),
	}
}

// AddRemaining appends a row pre-filled with the remaining amount. The method
// is the first of methods not yet used by rows, else the first of methods,
// else FallbackMethod. Rows are returned unchanged when nothing remains.
func AddRemaining(total decimal.Decimal, rows []models.SplitPaymentDetail, methods []string) []models.SplitPaymentDetail {
	out := make([]models.SplitPaymentDetail, len(rows), len(rows)+1)
	copy(out, rows)

	remaining := Reconcile(total, rows).Remaining
	if !remaining.IsPositive() {
		return out
	}

	return append(out, models.SplitPaymentDetail{
		Method: nextMethod(rows, methods),
		Amount: remaining,
	})
}

func nextMethod(rows []models.SplitPaymentDetail, methods []string) string {
	used := make(map[string]bool, len(rows))
	for _, r := range rows {
		used[r.Method] = true
	}
	for _, m := range methods {
		if !used[m] {
			return m
		}
	}
	if len(methods) > 0 {
		return methods[0]
	}
	return FallbackMethod
}

// SplitLabel builds the receipt payment method for a split: the single method
// when every row used the same one, otherwise "Split (A, B, ...)" listing the
// distinct methods in row order.
func SplitLabel(rows []models.SplitPaymentDetail) string {
	var methods []string
	seen := map[string]bool{}
	for _, r := range rows {
		if seen[r.Method] {
			continue
		}
		seen[r.Method] = true
		methods = append(methods, r.Method)
	}
	if len(methods) == 1 {
		return methods[0]
	}
	return "Split (" + strings.Join(methods, ", ") + ")"
}
