package order

import (
	"time"

	"restopos/internal/models"
)

// Snapshot copies the current lines into a new saved ticket. The order itself
// is left untouched; the caller clears it once the ticket is stored.
func (o *Order) Snapshot(name string, now time.Time) models.SavedTicket {
	return models.SavedTicket{
		ID:        o.newID(),
		Name:      name,
		Items:     o.Lines(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Merge concatenates the items of tickets, in the given order, into one new
// ticket. Quantities are never summed across tickets: lines for the same item
// coming from different tickets stay separate.
func Merge(newID IDFunc, name string, now time.Time, tickets ...models.SavedTicket) models.SavedTicket {
	var items []models.OrderLineItem
	for _, t := range tickets {
		items = append(items, t.Items...)
	}
	if items == nil {
		items = []models.OrderLineItem{}
	}
	return models.SavedTicket{
		ID:        newID(),
		Name:      name,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
