package report

import (
	"sort"
	"time"

	"restopos/internal/models"

	"github.com/shopspring/decimal"
)

// Uncategorized is the category of line items recorded without one.
const Uncategorized = "Uncategorized"

// TopItemsLimit is the number of entries in Metrics.TopItems.
const TopItemsLimit = 5

// ItemStat is the sales of one item, keyed by item name.
type ItemStat struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// OrderRow summarises one receipt for the order listing.
type OrderRow struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// Metrics is the dashboard view of the receipts in a range.
type Metrics struct {
	Range          Range                      `json:"range"`
	Mode           Mode                       `json:"mode"`
	TotalSales     decimal.Decimal            `json:"total_sales"`
	TotalOrders    int                        `json:"total_orders"`
	AvgOrderValue  decimal.Decimal            `json:"avg_order_value"`
	PaymentMethods map[string]decimal.Decimal `json:"payment_methods"`
	Categories     map[string]decimal.Decimal `json:"categories"`
	Items          []ItemStat                 `json:"items"`
	TopItems       []ItemStat                 `json:"top_items"`
	Orders         []OrderRow                 `json:"orders"`
	Series         []Point                    `json:"series"`
}

// Options narrow the receipts that are aggregated.
type Options struct {
	// PaymentMethod keeps only receipts whose method equals it, when set.
	PaymentMethod string
}

// Aggregate computes Metrics over the receipts that fall in r and match opts.
// Receipts outside r are ignored, so callers may pass a wider set. The result
// depends only on the arguments.
func Aggregate(receipts []models.Receipt, r Range, opts Options, shifts Shifts, now time.Time) Metrics {
	m := Metrics{
		Range:          r,
		Mode:           ModeFor(r),
		TotalSales:     decimal.Zero,
		AvgOrderValue:  decimal.Zero,
		PaymentMethods: map[string]decimal.Decimal{},
		Categories:     map[string]decimal.Decimal{},
		Items:          []ItemStat{},
		TopItems:       []ItemStat{},
		Orders:         []OrderRow{},
		Series:         Buckets(r, shifts, now),
	}

	items := map[string]*ItemStat{}
	var order []string

	for _, rc := range receipts {
		if !r.Contains(rc.Date) {
			continue
		}
		if opts.PaymentMethod != "" && rc.PaymentMethod != opts.PaymentMethod {
			continue
		}

		m.TotalSales = m.TotalSales.Add(rc.Total)
		m.TotalOrders++
		m.PaymentMethods[rc.PaymentMethod] = m.PaymentMethods[rc.PaymentMethod].Add(rc.Total)
		m.Orders = append(m.Orders, OrderRow{
			ID:            rc.ID,
			Date:          rc.Date,
			Total:         rc.Total,
			PaymentMethod: rc.PaymentMethod,
			ItemCount:     rc.ItemCount(),
		})

		for i := range m.Series {
			p := &m.Series[i]
			if !rc.Date.Before(p.Start) && rc.Date.Before(p.End) {
				p.Value = p.Value.Add(rc.Total)
				break
			}
		}

		for _, line := range rc.Items {
			category := line.Category
			if category == "" {
				category = Uncategorized
			}
			revenue := line.LineTotal()

			stat, ok := items[line.Name]
			if !ok {
				stat = &ItemStat{Name: line.Name, Category: category, Revenue: decimal.Zero}
				items[line.Name] = stat
				order = append(order, line.Name)
			}
			stat.Count += line.Quantity
			stat.Revenue = stat.Revenue.Add(revenue)
			m.Categories[category] = m.Categories[category].Add(revenue)
		}
	}

	if m.TotalOrders > 0 {
		m.AvgOrderValue = m.TotalSales.Div(decimal.NewFromInt(int64(m.TotalOrders)))
	}

	for _, name := range order {
		m.Items = append(m.Items, *items[name])
	}
	m.Items = SortItems(m.Items, SortState{Key: "revenue", Direction: Desc})

	top := len(m.Items)
	if top > TopItemsLimit {
		top = TopItemsLimit
	}
	m.TopItems = append(m.TopItems, m.Items[:top]...)

	sort.SliceStable(m.Orders, func(i, j int) bool { return m.Orders[i].Date.After(m.Orders[j].Date) })
	return m
}
