// Package order holds the in-progress order of a sales session: line-item
// coalescing, quantity edits, totals and ticket snapshots.
package order

import (
	"errors"
	"strconv"
	"strings"

	"restopos/internal/models"

	"github.com/google/uuid"
)

// ErrLineNotFound is returned by callers when a line item id is not in the
// order.
var ErrLineNotFound = errors.New("line item not found")

// IDFunc generates line item and ticket identifiers.
type IDFunc func() string

// Order is the current, unsaved order. It is not safe for concurrent use;
// callers serialise access to it.
type Order struct {
	lines []models.OrderLineItem
	newID IDFunc
}

// New creates an empty order that generates ids with uuid.
func New() *Order {
	return NewWithIDs(uuid.NewString)
}

// NewWithIDs creates an empty order with a custom id generator.
func NewWithIDs(newID IDFunc) *Order {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Order{newID: newID}
}

// Add puts one unit of item into the order. The unit is coalesced into the
// last line only when that line holds the same item; otherwise a new line is
// appended, so duplicates separated by other lines stay separate.
func (o *Order) Add(item models.Item) models.OrderLineItem {
	if n := len(o.lines); n > 0 && o.lines[n-1].ItemID == item.ID {
		o.lines[n-1].Quantity++
		return o.lines[n-1]
	}

	line := models.OrderLineItem{
		LineItemID: o.newID(),
		ItemID:     item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Category:   item.Category,
		Quantity:   1,
	}
	o.lines = append(o.lines, line)
	return line
}

// Remove takes one unit off the line, dropping the line when it reaches zero.
// It reports whether the line existed.
func (o *Order) Remove(lineItemID string) bool {
	i := o.index(lineItemID)
	if i < 0 {
		return false
	}
	if o.lines[i].Quantity <= 1 {
		o.deleteAt(i)
		return true
	}
	o.lines[i].Quantity--
	return true
}

// Delete removes the line regardless of its quantity.
func (o *Order) Delete(lineItemID string) bool {
	i := o.index(lineItemID)
	if i < 0 {
		return false
	}
	o.deleteAt(i)
	return true
}

// UpdateQuantity sets the quantity of a line. A quantity below one deletes
// the line.
func (o *Order) UpdateQuantity(lineItemID string, quantity int) bool {
	if quantity <= 0 {
		return o.Delete(lineItemID)
	}
	i := o.index(lineItemID)
	if i < 0 {
		return false
	}
	o.lines[i].Quantity = quantity
	return true
}

// Clear empties the order.
func (o *Order) Clear() {
	o.lines = nil
}

// Load replaces the order with a snapshot. Lines saved without a line item id
// get a fresh one, and lines with a non-positive quantity are dropped.
func (o *Order) Load(lines []models.OrderLineItem) {
	loaded := make([]models.OrderLineItem, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if l.LineItemID == "" {
			l.LineItemID = o.newID()
		}
		loaded = append(loaded, l)
	}
	o.lines = loaded
}

// Lines returns a copy of the order lines in insertion order.
func (o *Order) Lines() []models.OrderLineItem {
	out := make([]models.OrderLineItem, len(o.lines))
	copy(out, o.lines)
	return out
}

// IsEmpty reports whether the order has no lines.
func (o *Order) IsEmpty() bool {
	return len(o.lines) == 0
}

func (o *Order) index(lineItemID string) int {
	for i, l := range o.lines {
		if l.LineItemID == lineItemID {
			return i
		}
	}
	return -1
}

func (o *Order) deleteAt(i int) {
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
}

// ParseQuantity converts operator input into a quantity. Anything that is not
// an integer yields 0, which UpdateQuantity treats as a deletion.
func ParseQuantity(input string) int {
	q, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0
	}
	return q
}
