package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restopos/internal/models"
	"restopos/internal/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyOrder is returned when a payment is taken for an order without lines.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrSplitNotBalanced is returned when split rows do not reconcile with the total.
	ErrSplitNotBalanced = errors.New("split payment does not balance the total")
	// ErrMissingMethod is returned when a payment has no method name.
	ErrMissingMethod = errors.New("payment method is required")
)

// Kind selects the payment path.
type Kind int

const (
	// Cash records the tendered amount and the change.
	Cash Kind = iota
	// Exact records a non-cash method for exactly the total.
	Exact
	// Split settles the total across several methods.
	Split
)

// Checkout is everything needed to finalize a sale.
type Checkout struct {
	Lines      []models.OrderLineItem
	TaxEnabled bool
	TaxRate    decimal.Decimal
	Kind       Kind
	Method     string          // Cash and Exact
	Tendered   decimal.Decimal // Cash only
	Rows       []models.SplitPaymentDetail
	TicketID   string
}

// Engine builds receipts. Ids come from NewID and timestamps from Now so that
// tests can pin both.
type Engine struct {
	NewID func() string
	Now   func() time.Time
}

// NewEngine returns an Engine using uuid ids and the wall clock. uuids stay
// unique when several receipts are created within the same millisecond.
func NewEngine() *Engine {
	return &Engine{NewID: uuid.NewString, Now: time.Now}
}

// Finalize validates the payment and produces the receipt.
func (e *Engine) Finalize(c Checkout) (models.Receipt, error) {
	if len(c.Lines) == 0 {
		return models.Receipt{}, ErrEmptyOrder
	}

	totals := order.ComputeTotals(c.Lines, c.TaxEnabled, c.TaxRate)
	receipt := models.Receipt{
		ID:       e.NewID(),
		Date:     e.Now(),
		Items:    append([]models.OrderLineItem(nil), c.Lines...),
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
		TicketID: c.TicketID,
	}

	switch c.Kind {
	case Cash:
		method := c.Method
		if strings.TrimSpace(method) == "" {
			method = FallbackMethod
		}
		receipt.PaymentMethod = method
		receipt.Tendered = c.Tendered
		receipt.Change = CashChange(c.Tendered, totals.Total)
	case Exact:
		if strings.TrimSpace(c.Method) == "" {
			return models.Receipt{}, ErrMissingMethod
		}
		receipt.PaymentMethod = c.Method
		receipt.Tendered = totals.Total
		receipt.Change = decimal.Zero
	case Split:
		rec := Reconcile(totals.Total, c.Rows)
		if !rec.Valid {
			return models.Receipt{}, fmt.Errorf("%w: remaining %s", ErrSplitNotBalanced, rec.Remaining.StringFixed(2))
		}
		receipt.PaymentMethod = SplitLabel(c.Rows)
		receipt.Tendered = rec.TotalEntered
		receipt.Change = decimal.Zero
		receipt.SplitDetails = append([]models.SplitPaymentDetail(nil), c.Rows...)
	default:
		return models.Receipt{}, fmt.Errorf("unknown payment kind %d", c.Kind)
	}

	return receipt, nil
}
