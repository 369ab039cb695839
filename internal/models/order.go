package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineItem is one row of the current order. Price and category are
// copied from the catalog item when the line is created.
type OrderLineItem struct {
	LineItemID string          `json:"line_item_id"`
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category,omitempty"`
	Quantity   int             `json:"quantity"`
}

// LineTotal returns price × quantity.
func (l OrderLineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SavedTicket is a named snapshot of an order in progress (a table or a tab).
type SavedTicket struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string          `json:"name" gorm:"type:varchar(100)"`
	Items     []OrderLineItem `json:"items" gorm:"serializer:json"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
