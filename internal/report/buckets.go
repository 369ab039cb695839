package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode is the bucket width of the sales series.
type Mode string

const (
	Hourly Mode = "hourly"
	Daily  Mode = "daily"
)

// DailyThreshold is the range length above which the series switches to
// one bucket per business day.
const DailyThreshold = 48 * time.Hour

// ModeFor picks daily buckets for ranges longer than DailyThreshold and
// hourly buckets otherwise.
func ModeFor(r Range) Mode {
	if r.Duration() > DailyThreshold {
		return Daily
	}
	return Hourly
}

// Point is one bucket of the sales series.
type Point struct {
	Label string          `json:"label"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Value decimal.Decimal `json:"value"`
}

// Buckets lays out the empty series for r. Hourly buckets start on the clock
// hour and any bucket starting after now is left out. Daily buckets run from
// MorningStart to MorningStart of the next day, so early-morning sales count
// towards the previous business day. The first and last daily buckets are
// stretched or clipped to r, so every sale in r falls in exactly one bucket.
func Buckets(r Range, shifts Shifts, now time.Time) []Point {
	var points []Point

	if ModeFor(r) == Daily {
		for day := midnight(r.Start); day.Before(r.End); day = day.AddDate(0, 0, 1) {
			points = append(points, Point{
				Label: day.Format("2006-01-02"),
				Start: shifts.MorningStart.On(day),
				End:   shifts.MorningStart.On(day.AddDate(0, 0, 1)),
				Value: decimal.Zero,
			})
		}
		if n := len(points); n > 0 {
			points[0].Start = r.Start
			if points[n-1].End.After(r.End) {
				points[n-1].End = r.End
			}
		}
		return points
	}

	y, m, d := r.Start.Date()
	for b := time.Date(y, m, d, r.Start.Hour(), 0, 0, 0, r.Start.Location()); b.Before(r.End); b = b.Add(time.Hour) {
		if b.After(now) {
			break
		}
		points = append(points, Point{
			Label: b.Format("15:04"),
			Start: b,
			End:   b.Add(time.Hour),
			Value: decimal.Zero,
		})
	}
	return points
}
