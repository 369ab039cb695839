package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitPaymentDetail is one (method, amount) row of a split payment.
type SplitPaymentDetail struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Receipt is the immutable record of a finalized sale.
type Receipt struct {
	ID            string               `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date          time.Time            `json:"date" gorm:"index"`
	Items         []OrderLineItem      `json:"items" gorm:"serializer:json"`
	Subtotal      decimal.Decimal      `json:"subtotal" gorm:"type:decimal(12,2)"`
	Tax           decimal.Decimal      `json:"tax" gorm:"type:decimal(12,2)"`
	Total         decimal.Decimal      `json:"total" gorm:"type:decimal(12,2)"`
	PaymentMethod string               `json:"payment_method" gorm:"type:varchar(255);index"`
	Tendered      decimal.Decimal      `json:"tendered" gorm:"type:decimal(12,2)"`
	Change        decimal.Decimal      `json:"change" gorm:"type:decimal(12,2)"`
	SplitDetails  []SplitPaymentDetail `json:"split_details,omitempty" gorm:"serializer:json"`
	TicketID      string               `json:"ticket_id,omitempty" gorm:"type:varchar(36)"` // Source ticket, if one was being edited
}

// ItemCount returns the number of units sold on the receipt.
func (r Receipt) ItemCount() int {
	n := 0
	for _, l := range r.Items {
		n += l.Quantity
	}
	return n
}
