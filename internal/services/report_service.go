package services

import (
	"context"
	"fmt"
	"time"

	"restopos/internal/report"
	"restopos/internal/repositories"
	"restopos/pkg/pagination"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportRequest are the dashboard controls. Start and End are YYYY-MM-DD
// and only read for the custom filter.
type ReportRequest struct {
	Filter string `query:"filter"`
	Shift  string `query:"shift"`
	Start  string `query:"start"`
	End    string `query:"end"`
	Method string `query:"method"`
	Sort   string `query:"sort"`
	Dir    string `query:"dir"`
	Page   int    `query:"page"`
}

// ReportSummary is the headline part of the dashboard.
type ReportSummary struct {
	Range          report.Range               `json:"range"`
	Mode           report.Mode                `json:"mode"`
	TotalSales     decimal.Decimal            `json:"total_sales"`
	TotalOrders    int                        `json:"total_orders"`
	AvgOrderValue  decimal.Decimal            `json:"avg_order_value"`
	PaymentMethods map[string]decimal.Decimal `json:"payment_methods"`
	Categories     map[string]decimal.Decimal `json:"categories"`
	TopItems       []report.ItemStat          `json:"top_items"`
	Series         []report.Point             `json:"series"`
}

// ReportListing is a sorted page of a dashboard table.
type ReportListing[T any] struct {
	Sort report.SortState `json:"sort"`
	*pagination.PaginatedResult[T]
}

// ShiftSource supplies the shift boundaries.
type ShiftSource interface {
	Shifts(ctx context.Context) (report.Shifts, error)
}

// ReportService aggregates stored receipts for the dashboard.
type ReportService struct {
	receipts repositories.ReceiptRepository
	shifts   ShiftSource
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewReportService creates a new ReportService. Calendar days are taken in
// loc.
func NewReportService(receipts repositories.ReceiptRepository, shifts ShiftSource, loc *time.Location, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{receipts: receipts, shifts: shifts, loc: loc, now: time.Now, logger: logger}
}

// Summary returns the headline metrics for the request's range.
func (s *ReportService) Summary(ctx context.Context, req ReportRequest) (*ReportSummary, error) {
	m, err := s.metrics(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ReportSummary{
		Range:          m.Range,
		Mode:           m.Mode,
		TotalSales:     m.TotalSales,
		TotalOrders:    m.TotalOrders,
		AvgOrderValue:  m.AvgOrderValue,
		PaymentMethods: m.PaymentMethods,
		Categories:     m.Categories,
		TopItems:       m.TopItems,
		Series:         m.Series,
	}, nil
}

// Items returns one page of per-item sales, sorted by revenue unless asked
// otherwise.
func (s *ReportService) Items(ctx context.Context, req ReportRequest) (*ReportListing[report.ItemStat], error) {
	m, err := s.metrics(ctx, req)
	if err != nil {
		return nil, err
	}
	sortState := report.NewSortState(req.Sort, req.Dir, report.ItemSortKeys, "revenue")
	rows := report.SortItems(m.Items, sortState)
	return &ReportListing[report.ItemStat]{Sort: sortState, PaginatedResult: report.Page(rows, req.Page)}, nil
}

// Orders returns one page of receipts in the range, newest first unless
// asked otherwise.
func (s *ReportService) Orders(ctx context.Context, req ReportRequest) (*ReportListing[report.OrderRow], error) {
	m, err := s.metrics(ctx, req)
	if err != nil {
		return nil, err
	}
	sortState := report.NewSortState(req.Sort, req.Dir, report.OrderSortKeys, "date")
	rows := report.SortOrders(m.Orders, sortState)
	return &ReportListing[report.OrderRow]{Sort: sortState, PaginatedResult: report.Page(rows, req.Page)}, nil
}

func (s *ReportService) metrics(ctx context.Context, req ReportRequest) (report.Metrics, error) {
	shifts, err := s.shifts.Shifts(ctx)
	if err != nil {
		return report.Metrics{}, err
	}
	now := s.now().In(s.loc)

	q := report.Query{Filter: report.Filter(req.Filter), Shift: report.Shift(req.Shift)}
	if q.Filter == report.Custom {
		if q.CustomStart, err = s.parseDay(req.Start); err != nil {
			return report.Metrics{}, err
		}
		if q.CustomEnd, err = s.parseDay(req.End); err != nil {
			return report.Metrics{}, err
		}
	}

	r, err := report.Resolve(q, shifts, now)
	if err != nil {
		return report.Metrics{}, err
	}
	receipts, err := s.receipts.ListBetween(ctx, r.Start, r.End, true)
	if err != nil {
		return report.Metrics{}, err
	}
	for i := range receipts {
		receipts[i].Date = receipts[i].Date.In(s.loc)
	}
	s.logger.Debug("report computed",
		zap.String("filter", req.Filter),
		zap.Time("start", r.Start),
		zap.Time("end", r.End),
		zap.Int("receipts", len(receipts)))
	return report.Aggregate(receipts, r, report.Options{PaymentMethod: req.Method}, shifts, now), nil
}

func (s *ReportService) parseDay(v string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", report.ErrInvalidCustomRange, v)
	}
	return day, nil
}

