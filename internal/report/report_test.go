package report_test

import (
	"testing"
	"time"

	"restopos/internal/models"
	"restopos/internal/report"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = time.FixedZone("WIB", 7*3600)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, loc)
}

func shifts(t *testing.T) report.Shifts {
	s, err := report.ParseShifts("05:00", "17:30", "05:00")
	require.NoError(t, err)
	return s
}

func receipt(id string, date time.Time, total, method string, lines ...models.OrderLineItem) models.Receipt {
	return models.Receipt{ID: id, Date: date, Total: decimal.RequireFromString(total), PaymentMethod: method, Items: lines}
}

func line(name, category, price string, qty int) models.OrderLineItem {
	return models.OrderLineItem{Name: name, Category: category, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestParseClock(t *testing.T) {
	c, err := report.ParseClock("17:30")
	require.NoError(t, err)
	assert.Equal(t, report.Clock{Hour: 17, Minute: 30}, c)
	assert.Equal(t, "17:30", c.String())

	_, err = report.ParseClock("25:00")
	assert.ErrorIs(t, err, report.ErrInvalidClock)
	_, err = report.ParseShifts("05:00", "oops", "05:00")
	assert.ErrorIs(t, err, report.ErrInvalidClock)
}

func TestResolve_SingleDayShifts(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 14, 0)

	r, err := report.Resolve(report.Query{Filter: report.Today, Shift: report.Morning}, s, now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 10, 5, 0), r.Start)
	assert.Equal(t, at(2024, 3, 10, 17, 30), r.End)

	r, err = report.Resolve(report.Query{Filter: report.Today, Shift: report.Night}, s, now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 10, 17, 30), r.Start)
	assert.Equal(t, at(2024, 3, 11, 5, 0), r.End)

	r, err = report.Resolve(report.Query{Filter: report.Today}, s, now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 10, 5, 0), r.Start)
	assert.Equal(t, at(2024, 3, 11, 5, 0), r.End)

	r, err = report.Resolve(report.Query{Filter: report.Yesterday, Shift: report.AllDay}, s, now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 9, 5, 0), r.Start)
	assert.Equal(t, at(2024, 3, 10, 5, 0), r.End)
}

func TestResolve_TodayBeforeMorningStartIsPreviousBusinessDay(t *testing.T) {
	r, err := report.Resolve(report.Query{Filter: report.Today}, shifts(t), at(2024, 3, 10, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 9, 5, 0), r.Start)
}

func TestResolve_WeekAndMonthUseCalendarDays(t *testing.T) {
	now := at(2024, 3, 10, 14, 0)

	r, err := report.Resolve(report.Query{Filter: report.Week, Shift: report.Night}, shifts(t), now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 4, 0, 0), r.Start)
	assert.Equal(t, at(2024, 3, 11, 0, 0), r.End)

	r, err = report.Resolve(report.Query{Filter: report.Month}, shifts(t), now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 2, 10, 0, 0), r.Start)
	assert.Equal(t, at(2024, 3, 11, 0, 0), r.End)
}

func TestResolve_Custom(t *testing.T) {
	now := at(2024, 3, 10, 14, 0)

	r, err := report.Resolve(report.Query{Filter: report.Custom, CustomStart: at(2024, 3, 1, 0, 0), CustomEnd: at(2024, 3, 3, 0, 0)}, shifts(t), now)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 3, 1, 0, 0), r.Start)
	assert.Equal(t, at(2024, 3, 4, 0, 0), r.End)

	_, err = report.Resolve(report.Query{Filter: report.Custom, CustomStart: at(2024, 3, 3, 0, 0), CustomEnd: at(2024, 3, 1, 0, 0)}, shifts(t), now)
	assert.ErrorIs(t, err, report.ErrInvalidCustomRange)

	_, err = report.Resolve(report.Query{Filter: "fortnight"}, shifts(t), now)
	assert.ErrorIs(t, err, report.ErrUnknownFilter)
	_, err = report.Resolve(report.Query{Filter: report.Today, Shift: "brunch"}, shifts(t), now)
	assert.ErrorIs(t, err, report.ErrUnknownShift)
}

func TestNightShiftCrossesMidnight(t *testing.T) {
	s := shifts(t)
	anchor := at(2024, 3, 10, 0, 0)
	night, err := report.Resolve(report.Query{Filter: report.Custom, Shift: report.Night, CustomStart: anchor, CustomEnd: anchor}, s, at(2024, 3, 12, 9, 0))
	require.NoError(t, err)
	morningNext, err := report.Resolve(report.Query{Filter: report.Custom, Shift: report.Morning, CustomStart: anchor.AddDate(0, 0, 1), CustomEnd: anchor.AddDate(0, 0, 1)}, s, at(2024, 3, 12, 9, 0))
	require.NoError(t, err)

	late := at(2024, 3, 11, 2, 0)
	assert.True(t, night.Contains(late))
	assert.False(t, morningNext.Contains(late))

	m := report.Aggregate([]models.Receipt{receipt("r1", late, "12.00", "Cash")}, night, report.Options{}, s, at(2024, 3, 12, 9, 0))
	assert.Equal(t, 1, m.TotalOrders)
}

func TestModeFor(t *testing.T) {
	start := at(2024, 3, 1, 0, 0)
	assert.Equal(t, report.Daily, report.ModeFor(report.Range{Start: start, End: start.Add(48*time.Hour + time.Minute)}))
	assert.Equal(t, report.Hourly, report.ModeFor(report.Range{Start: start, End: start.Add(48 * time.Hour)}))
	assert.Equal(t, report.Hourly, report.ModeFor(report.Range{Start: start, End: start}))
}

func TestBuckets_HourlySuppressesFuture(t *testing.T) {
	s := shifts(t)
	r := report.Range{Start: at(2024, 3, 10, 5, 0), End: at(2024, 3, 11, 5, 0)}

	points := report.Buckets(r, s, at(2024, 3, 10, 9, 15))
	require.Len(t, points, 5) // 05, 06, 07, 08, 09
	assert.Equal(t, "05:00", points[0].Label)
	assert.Equal(t, "09:00", points[4].Label)

	all := report.Buckets(r, s, at(2024, 3, 12, 0, 0))
	assert.Len(t, all, 24)
}

func TestBuckets_DailyAnchoredAtMorningStart(t *testing.T) {
	s := shifts(t)
	r := report.Range{Start: at(2024, 3, 4, 0, 0), End: at(2024, 3, 11, 0, 0)}
	now := at(2024, 3, 10, 12, 0)

	points := report.Buckets(r, s, now)
	require.Len(t, points, 7)
	assert.Equal(t, "2024-03-04", points[0].Label)
	assert.Equal(t, r.Start, points[0].Start)
	assert.Equal(t, at(2024, 3, 5, 5, 0), points[0].End)
	assert.Equal(t, at(2024, 3, 10, 5, 0), points[6].Start)
	assert.Equal(t, r.End, points[6].End)

	receipts := []models.Receipt{
		receipt("a", at(2024, 3, 6, 3, 0), "10", "Cash"), // before 05:00, previous business day
		receipt("b", at(2024, 3, 6, 12, 0), "7", "Cash"),
	}
	m := report.Aggregate(receipts, r, report.Options{}, s, now)
	assert.Equal(t, report.Daily, m.Mode)
	assert.Equal(t, "10", m.Series[1].Value.String())
	assert.Equal(t, "7", m.Series[2].Value.String())
}

func TestAggregate_DailySeriesAddsUpToTotal(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 12, 0)
	r, err := report.Resolve(report.Query{Filter: report.Week}, s, now)
	require.NoError(t, err)

	receipts := []models.Receipt{
		receipt("early", r.Start.Add(3*time.Hour), "10", "Cash"), // before the first morning start
		receipt("mid", at(2024, 3, 7, 14, 0), "4", "Cash"),
		receipt("late", r.End.Add(-time.Minute), "6", "Card"),
	}
	m := report.Aggregate(receipts, r, report.Options{}, s, now)
	require.Equal(t, report.Daily, m.Mode)
	require.Equal(t, 3, m.TotalOrders)

	sum := decimal.Zero
	for _, p := range m.Series {
		sum = sum.Add(p.Value)
	}
	assert.True(t, m.TotalSales.Equal(sum), "series %s, total %s", sum, m.TotalSales)
	assert.Equal(t, "10", m.Series[0].Value.String())
}

func sampleReceipts() []models.Receipt {
	return []models.Receipt{
		receipt("r1", at(2024, 3, 10, 9, 10), "20.00", "Cash",
			line("Burger", "Mains", "8.00", 2), line("Cola", "", "2.00", 2)),
		receipt("r2", at(2024, 3, 10, 9, 40), "30.00", "Card",
			line("Steak", "Mains", "30.00", 1)),
		receipt("r3", at(2024, 3, 10, 11, 5), "11.00", "Split (Cash, Card)",
			line("Burger", "Mains", "8.00", 1), line("Fries", "Sides", "3.00", 1)),
		receipt("out", at(2024, 3, 9, 11, 5), "99.00", "Cash",
			line("Burger", "Mains", "8.00", 1)),
	}
}

func TestAggregate(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 12, 30)
	r, err := report.Resolve(report.Query{Filter: report.Today}, s, now)
	require.NoError(t, err)

	m := report.Aggregate(sampleReceipts(), r, report.Options{}, s, now)

	assert.Equal(t, 3, m.TotalOrders)
	assert.Equal(t, "61", m.TotalSales.String())
	assert.Equal(t, "20.33", m.AvgOrderValue.StringFixed(2))
	assert.Equal(t, "20", m.PaymentMethods["Cash"].String())
	assert.Equal(t, "30", m.PaymentMethods["Card"].String())
	assert.Equal(t, "11", m.PaymentMethods["Split (Cash, Card)"].String())

	assert.Equal(t, "54", m.Categories["Mains"].String())
	assert.Equal(t, "4", m.Categories[report.Uncategorized].String())
	assert.Equal(t, "3", m.Categories["Sides"].String())

	require.Len(t, m.Items, 4)
	assert.Equal(t, "Steak", m.Items[0].Name)
	assert.Equal(t, "Burger", m.Items[1].Name)
	assert.Equal(t, 3, m.Items[1].Count)
	assert.Equal(t, "24", m.Items[1].Revenue.String())
	assert.Equal(t, report.Uncategorized, m.Items[2].Category)
	assert.Len(t, m.TopItems, 4)

	// Hourly series up to now: 05..12
	require.Len(t, m.Series, 8)
	assert.Equal(t, "50", m.Series[4].Value.String()) // 09:00
	assert.Equal(t, "11", m.Series[6].Value.String()) // 11:00

	require.Len(t, m.Orders, 3)
	assert.Equal(t, "r3", m.Orders[0].ID)
	assert.Equal(t, 4, m.Orders[2].ItemCount)
}

func TestAggregate_PaymentMethodFilter(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 12, 30)
	r, _ := report.Resolve(report.Query{Filter: report.Today}, s, now)

	m := report.Aggregate(sampleReceipts(), r, report.Options{PaymentMethod: "Cash"}, s, now)
	assert.Equal(t, 1, m.TotalOrders)
	assert.Equal(t, "20", m.TotalSales.String())
	assert.Len(t, m.PaymentMethods, 1)
}

func TestAggregate_Empty(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 12, 30)
	r := report.Range{Start: now, End: now}

	m := report.Aggregate(nil, r, report.Options{}, s, now)
	assert.Equal(t, 0, m.TotalOrders)
	assert.True(t, m.TotalSales.IsZero())
	assert.True(t, m.AvgOrderValue.IsZero())
	assert.Empty(t, m.Items)
	assert.Empty(t, m.TopItems)
	assert.Empty(t, m.Orders)
}

func TestAggregate_Idempotent(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 12, 30)
	r, _ := report.Resolve(report.Query{Filter: report.Week}, s, now)
	receipts := sampleReceipts()

	first := report.Aggregate(receipts, r, report.Options{}, s, now)
	second := report.Aggregate(receipts, r, report.Options{}, s, now)
	assert.Equal(t, first, second)
	assert.Equal(t, sampleReceipts(), receipts)
}

func TestAggregate_TopItemsCappedAtFive(t *testing.T) {
	s := shifts(t)
	now := at(2024, 3, 10, 12, 30)
	r, _ := report.Resolve(report.Query{Filter: report.Today}, s, now)

	var lines []models.OrderLineItem
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		lines = append(lines, line(name, "X", "1", i+1))
	}
	m := report.Aggregate([]models.Receipt{receipt("r", at(2024, 3, 10, 10, 0), "28", "Cash", lines...)}, r, report.Options{}, s, now)

	require.Len(t, m.TopItems, report.TopItemsLimit)
	assert.Equal(t, "G", m.TopItems[0].Name)
	assert.Equal(t, "C", m.TopItems[4].Name)
	assert.Len(t, m.Items, 7)
}
