package order_test

import (
	"fmt"
	"testing"
	"time"

	"restopos/internal/models"
	"restopos/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() order.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
}

func item(id string, price string) models.Item {
	return models.Item{ID: id, Name: "Item " + id, Price: decimal.RequireFromString(price), Category: "Food"}
}

func TestOrder_AddCoalescesOnlyWithLastLine(t *testing.T) {
	o := order.NewWithIDs(sequentialIDs())
	a, b := item("a", "2.50"), item("b", "4.00")

	o.Add(a)
	o.Add(a)
	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	o.Add(b)
	o.Add(a)
	lines = o.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"a", "b", "a"}, []string{lines[0].ItemID, lines[1].ItemID, lines[2].ItemID})
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[2].Quantity)
	assert.NotEqual(t, lines[0].LineItemID, lines[2].LineItemID)
}

func TestOrder_AddCopiesPriceAtAddTime(t *testing.T) {
	o := order.New()
	a := item("a", "3.00")
	line := o.Add(a)

	a.Price = decimal.RequireFromString("9.99")
	assert.True(t, line.Price.Equal(decimal.RequireFromString("3.00")))
	assert.True(t, o.Lines()[0].Price.Equal(decimal.RequireFromString("3.00")))
	assert.Equal(t, "Food", line.Category)
}

func TestOrder_Remove(t *testing.T) {
	o := order.NewWithIDs(sequentialIDs())
	o.Add(item("a", "1"))
	o.Add(item("a", "1"))

	assert.True(t, o.Remove("line-1"))
	assert.Equal(t, 1, o.Lines()[0].Quantity)

	assert.True(t, o.Remove("line-1"))
	assert.True(t, o.IsEmpty())

	// Unknown line is a no-op
	assert.False(t, o.Remove("line-1"))
}

func TestOrder_DeleteIgnoresQuantity(t *testing.T) {
	o := order.NewWithIDs(sequentialIDs())
	o.Add(item("a", "1"))
	o.UpdateQuantity("line-1", 7)
	o.Add(item("b", "1"))

	assert.True(t, o.Delete("line-1"))
	lines := o.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].ItemID)
	assert.False(t, o.Delete("missing"))
}

func TestOrder_UpdateQuantityFloor(t *testing.T) {
	for _, q := range []int{0, -5} {
		t.Run(fmt.Sprintf("quantity %d", q), func(t *testing.T) {
			o := order.NewWithIDs(sequentialIDs())
			o.Add(item("a", "1"))
			o.Add(item("b", "1"))

			o.UpdateQuantity("line-1", q)
			for _, l := range o.Lines() {
				assert.NotEqual(t, "line-1", l.LineItemID)
			}
			assert.Len(t, o.Lines(), 1)
		})
	}
}

func TestOrder_UpdateQuantitySetsValue(t *testing.T) {
	o := order.NewWithIDs(sequentialIDs())
	o.Add(item("a", "1"))
	assert.True(t, o.UpdateQuantity("line-1", 12))
	assert.Equal(t, 12, o.Lines()[0].Quantity)
	assert.False(t, o.UpdateQuantity("nope", 3))
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 4, order.ParseQuantity(" 4 "))
	assert.Equal(t, 0, order.ParseQuantity("NaN"))
	assert.Equal(t, 0, order.ParseQuantity(""))
	assert.Equal(t, -2, order.ParseQuantity("-2"))
	assert.Equal(t, 0, order.ParseQuantity("1.5"))
}

func TestOrder_LoadFillsMissingLineIDs(t *testing.T) {
	o := order.NewWithIDs(sequentialIDs())
	o.Add(item("x", "1"))

	o.Load([]models.OrderLineItem{
		{LineItemID: "keep", ItemID: "a", Quantity: 2},
		{ItemID: "b", Quantity: 1},
		{ItemID: "c", Quantity: 0},
	})

	lines := o.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "keep", lines[0].LineItemID)
	assert.Equal(t, "line-2", lines[1].LineItemID)
}

func TestOrder_LinesReturnsCopy(t *testing.T) {
	o := order.New()
	o.Add(item("a", "1"))
	lines := o.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, o.Lines()[0].Quantity)
}

func TestOrder_Clear(t *testing.T) {
	o := order.New()
	o.Add(item("a", "1"))
	o.Clear()
	assert.True(t, o.IsEmpty())
	assert.Empty(t, o.Lines())
}

func TestComputeTotals(t *testing.T) {
	lines := []models.OrderLineItem{
		{Price: decimal.RequireFromString("2.50"), Quantity: 2},
		{Price: decimal.RequireFromString("10.00"), Quantity: 1},
	}

	totals := order.ComputeTotals(lines, true, decimal.NewFromInt(10))
	assert.Equal(t, "15", totals.Subtotal.String())
	assert.Equal(t, "1.5", totals.Tax.String())
	assert.Equal(t, "16.5", totals.Total.String())

	noTax := order.ComputeTotals(lines, false, decimal.NewFromInt(10))
	assert.True(t, noTax.Tax.IsZero())
	assert.True(t, noTax.Total.Equal(noTax.Subtotal))

	empty := order.ComputeTotals(nil, true, decimal.NewFromInt(10))
	assert.True(t, empty.Total.IsZero())
}

func TestComputeTotals_TotalIsSubtotalPlusTax(t *testing.T) {
	prices := []string{"0", "0.01", "1.99", "12.5", "99.95"}
	rates := []string{"0", "5", "7.25", "11", "20"}
	for pi, p := range prices {
		for _, r := range rates {
			lines := []models.OrderLineItem{
				{Price: decimal.RequireFromString(p), Quantity: pi + 1},
				{Price: decimal.RequireFromString(prices[(pi+2)%len(prices)]), Quantity: 3},
			}
			rate := decimal.RequireFromString(r)
			for _, enabled := range []bool{true, false} {
				totals := order.ComputeTotals(lines, enabled, rate)
				assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
				if !enabled {
					assert.True(t, totals.Tax.IsZero())
				}
			}
		}
	}
}

func TestSnapshotAndMerge(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := sequentialIDs()
	o := order.NewWithIDs(ids)
	o.Add(item("a", "1"))
	o.Add(item("b", "1"))

	ticket := o.Snapshot("Table 4", now)
	assert.Equal(t, "Table 4", ticket.Name)
	assert.Len(t, ticket.Items, 2)
	assert.False(t, o.IsEmpty())

	t1 := models.SavedTicket{ID: "t1", Items: make([]models.OrderLineItem, 2)}
	t2 := models.SavedTicket{ID: "t2", Items: make([]models.OrderLineItem, 3)}
	t3 := models.SavedTicket{ID: "t3", Items: []models.OrderLineItem{{ItemID: "a", Quantity: 1}}}
	t1.Items[0] = models.OrderLineItem{ItemID: "a", Quantity: 2}

	merged := order.Merge(ids, "Tables 1+2+3", now, t1, t2, t3)
	assert.Equal(t, "Tables 1+2+3", merged.Name)
	require.Len(t, merged.Items, 6)
	// Same item from different tickets is not coalesced
	assert.Equal(t, "a", merged.Items[0].ItemID)
	assert.Equal(t, "a", merged.Items[5].ItemID)
	assert.Equal(t, 2, merged.Items[0].Quantity)
	assert.Equal(t, 1, merged.Items[5].Quantity)
}

func TestMerge_NoTickets(t *testing.T) {
	merged := order.Merge(sequentialIDs(), "empty", time.Now())
	assert.NotNil(t, merged.Items)
	assert.Empty(t, merged.Items)
}
