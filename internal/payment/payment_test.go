package payment_test

import (
	"testing"
	"time"

	"restopos/internal/models"
	"restopos/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rows(pairs ...interface{}) []models.SplitPaymentDetail {
	var out []models.SplitPaymentDetail
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.SplitPaymentDetail{Method: pairs[i].(string), Amount: d(pairs[i+1].(string))})
	}
	return out
}

func TestCashChange(t *testing.T) {
	total := d("45.50")
	assert.Equal(t, "4.50", payment.CashChange(d("50.00"), total).StringFixed(2))
	assert.Equal(t, "0.00", payment.CashChange(d("45.50"), total).StringFixed(2))
	// Under-payment is preserved, not clamped
	assert.Equal(t, "-5.50", payment.CashChange(d("40.00"), total).StringFixed(2))
}

func TestReconcile(t *testing.T) {
	total := d("100.00")

	rec := payment.Reconcile(total, rows("Cash", "60", "Card", "40"))
	assert.True(t, rec.Valid)
	assert.True(t, rec.Remaining.IsZero())
	assert.Equal(t, "100.00", rec.TotalEntered.StringFixed(2))

	rec = payment.Reconcile(total, rows("Cash", "60", "Card", "39.99"))
	assert.False(t, rec.Valid, "exactly 0.01 remaining is outside the strict epsilon")
	assert.Equal(t, "0.01", rec.Remaining.StringFixed(2))

	rec = payment.Reconcile(total, rows("Cash", "60", "Card", "40.01"))
	assert.False(t, rec.Valid)
	assert.Equal(t, "-0.01", rec.Remaining.StringFixed(2))

	rec = payment.Reconcile(total, rows("Cash", "60", "Card", "39.996"))
	assert.True(t, rec.Valid, "remaining rounds to 0.00")
}

func TestReconcile_RowRules(t *testing.T) {
	total := d("10")

	assert.False(t, payment.Reconcile(total, nil).Valid)
	assert.False(t, payment.Reconcile(total, rows("", "10")).Valid)
	assert.False(t, payment.Reconcile(total, rows("Cash", "12", "Card", "-2")).Valid)
	assert.False(t, payment.Reconcile(total, rows("Cash", "10", "Card", "0")).Valid)
	assert.True(t, payment.Reconcile(total, rows("Cash", "10")).Valid)
}

func TestAddRemaining(t *testing.T) {
	total := d("100")
	methods := []string{"Cash", "Card", "Voucher"}

	out := payment.AddRemaining(total, rows("Cash", "30"), methods)
	require.Len(t, out, 2)
	assert.Equal(t, "Card", out[1].Method)
	assert.Equal(t, "70.00", out[1].Amount.StringFixed(2))
	assert.True(t, payment.Reconcile(total, out).Valid)

	// Every method used: falls back to the first configured one
	out = payment.AddRemaining(total, rows("Cash", "10", "Card", "10", "Voucher", "10"), methods)
	require.Len(t, out, 4)
	assert.Equal(t, "Cash", out[3].Method)

	// No methods configured
	out = payment.AddRemaining(total, nil, nil)
	require.Len(t, out, 1)
	assert.Equal(t, payment.FallbackMethod, out[0].Method)
	assert.Equal(t, "100", out[0].Amount.String())

	// Nothing remaining
	in := rows("Cash", "100")
	out = payment.AddRemaining(total, in, methods)
	assert.Equal(t, in, out)
}

func TestSplitLabel(t *testing.T) {
	assert.Equal(t, "Split (Cash, Card)", payment.SplitLabel(rows("Cash", "1", "Card", "1", "Cash", "1")))
	assert.Equal(t, "Card", payment.SplitLabel(rows("Card", "1", "Card", "2")))
}

func testEngine() *payment.Engine {
	n := 0
	return &payment.Engine{
		NewID: func() string {
			n++
			return "r" + string(rune('0'+n))
		},
		Now: func() time.Time { return time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC) },
	}
}

func lines() []models.OrderLineItem {
	return []models.OrderLineItem{
		{LineItemID: "l1", ItemID: "a", Name: "A", Price: d("20.00"), Quantity: 2},
		{LineItemID: "l2", ItemID: "b", Name: "B", Price: d("5.50"), Quantity: 1},
	}
}

func TestFinalize_Cash(t *testing.T) {
	e := testEngine()
	r, err := e.Finalize(payment.Checkout{Lines: lines(), Kind: payment.Cash, Tendered: d("50")})
	require.NoError(t, err)

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "Cash", r.PaymentMethod)
	assert.Equal(t, "45.50", r.Total.StringFixed(2))
	assert.Equal(t, "4.50", r.Change.StringFixed(2))
	assert.Nil(t, r.SplitDetails)
	assert.Len(t, r.Items, 2)

	short, err := e.Finalize(payment.Checkout{Lines: lines(), Kind: payment.Cash, Tendered: d("40")})
	require.NoError(t, err)
	assert.Equal(t, "-5.50", short.Change.StringFixed(2))
	assert.NotEqual(t, r.ID, short.ID)
}

func TestFinalize_ExactWithTax(t *testing.T) {
	e := testEngine()
	r, err := e.Finalize(payment.Checkout{
		Lines:      lines(),
		TaxEnabled: true,
		TaxRate:    d("10"),
		Kind:       payment.Exact,
		Method:     "Card",
	})
	require.NoError(t, err)
	assert.Equal(t, "Card", r.PaymentMethod)
	assert.Equal(t, "4.55", r.Tax.StringFixed(2))
	assert.Equal(t, "50.05", r.Total.StringFixed(2))
	assert.True(t, r.Tendered.Equal(r.Total))
	assert.True(t, r.Change.IsZero())

	_, err = e.Finalize(payment.Checkout{Lines: lines(), Kind: payment.Exact})
	assert.ErrorIs(t, err, payment.ErrMissingMethod)
}

func TestFinalize_Split(t *testing.T) {
	e := testEngine()
	split := rows("Cash", "20", "Card", "25.50")
	r, err := e.Finalize(payment.Checkout{Lines: lines(), Kind: payment.Split, Rows: split, TicketID: "t-9"})
	require.NoError(t, err)
	assert.Equal(t, "Split (Cash, Card)", r.PaymentMethod)
	assert.Equal(t, split, r.SplitDetails)
	assert.Equal(t, "t-9", r.TicketID)

	_, err = e.Finalize(payment.Checkout{Lines: lines(), Kind: payment.Split, Rows: rows("Cash", "20")})
	assert.ErrorIs(t, err, payment.ErrSplitNotBalanced)
}

func TestFinalize_EmptyOrder(t *testing.T) {
	_, err := testEngine().Finalize(payment.Checkout{Kind: payment.Cash, Tendered: d("1")})
	assert.ErrorIs(t, err, payment.ErrEmptyOrder)
}

func TestNewEngine_UniqueIDs(t *testing.T) {
	e := payment.NewEngine()
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		r, err := e.Finalize(payment.Checkout{Lines: lines(), Kind: payment.Exact, Method: "Card"})
		require.NoError(t, err)
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
}
