package services

import (
	"context"
	"sort"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
)

const (
	DefaultReportDays      = 30
	DefaultTransactionDays = 90

	topProductLimit = 5
	dayLayout       = "2006-01-02"
)

type ReportService struct {
	reportRepo repositories.ReportRepository
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(reportRepo repositories.ReportRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		reportRepo: reportRepo,
		loc:        loc,
		now:        time.Now,
	}
}

// WithClock replaces the clock, for tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Window returns the first day of the series and the exclusive upper bound
// (midnight after today) in the report location.
func (s *ReportService) Window(days int) (time.Time, time.Time) {
	return ReportWindow(s.now(), s.loc, days)
}

func ReportWindow(now time.Time, loc *time.Location, days int) (time.Time, time.Time) {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, -days), today.AddDate(0, 0, 1)
}

func (s *ReportService) DashboardReport(ctx context.Context, days int) (*other.DashboardReport, error) {
	start, end := s.Window(days)

	snapshot, err := s.reportRepo.LoadSnapshot(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := BuildDashboardReport(snapshot, start, end, s.loc)
	return &report, nil
}

func (s *ReportService) TransactionReport(ctx context.Context, days int) (*other.TransactionReport, error) {
	start, end := s.Window(days)

	items, err := s.reportRepo.LoadItems(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := BuildTransactionReport(items, start, end, s.loc)
	return &report, nil
}

func (s *ReportService) Stats(ctx context.Context) (*other.DashboardStats, error) {
	return s.reportRepo.LoadStats(ctx)
}

// dayKeys lists every calendar day from start up to, not including, end.
func dayKeys(start, end time.Time) []string {
	var keys []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(dayLayout))
	}
	return keys
}

// BuildDashboardReport aggregates a snapshot into the dashboard payload. It is
// a pure function of its inputs.
func BuildDashboardReport(snapshot *other.ReportSnapshot, start, end time.Time, loc *time.Location) other.DashboardReport {
	keys := dayKeys(start, end)
	daily := make(map[string]int64, len(keys))
	for _, k := range keys {
		daily[k] = 0
	}

	type productAgg struct {
		revenue int64
		qty     int64
	}
	byProduct := make(map[string]*productAgg)

	var totalRevenue, successRevenue int64
	for _, item := range snapshot.Items {
		revenue := int64(item.Quantity) * item.PriceAtOrder
		totalRevenue += revenue
		if item.OrderStatus == models.OrderStatusSuccess {
			successRevenue += revenue
		}

		key := item.OrderCreatedAt.In(loc).Format(dayLayout)
		if _, ok := daily[key]; ok {
			daily[key] += revenue
		}

		agg, ok := byProduct[item.ProductName]
		if !ok {
			agg = &productAgg{}
			byProduct[item.ProductName] = agg
		}
		agg.revenue += revenue
		agg.qty += int64(item.Quantity)
	}

	top := make([]other.TopProduct, 0, len(byProduct))
	for name, agg := range byProduct {
		top = append(top, other.TopProduct{Name: name, Revenue: agg.revenue, Qty: agg.qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	chart := make([]other.RevenuePoint, 0, len(keys))
	for _, k := range keys {
		chart = append(chart, other.RevenuePoint{Date: k, Revenue: daily[k]})
	}

	return other.DashboardReport{
		TotalRevenue:    totalRevenue,
		SuccessRevenue:  successRevenue,
		TotalOrders:     snapshot.Summary.OrdersInWindow,
		TotalProducts:   snapshot.Summary.ActiveProducts,
		TotalCategories: snapshot.Summary.ActiveCategories,
		TotalUsers:      snapshot.Summary.Users,
		StatusBreakdown: BuildStatusBreakdown(snapshot.StatusCounts),
		TopProducts:     top,
		RevenueChart:    chart,
	}
}

// BuildStatusBreakdown always returns all four statuses in display order.
// Unknown statuses in the input are ignored.
func BuildStatusBreakdown(rows []other.StatusCountRow) []other.StatusBreakdown {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] += row.Count
	}

	breakdown := make([]other.StatusBreakdown, 0, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		breakdown = append(breakdown, other.StatusBreakdown{
			Status: status,
			Label:  models.OrderStatusLabels[status],
			Count:  counts[status],
		})
	}
	return breakdown
}

func BuildTransactionReport(items []other.ReportItemRow, start, end time.Time, loc *time.Location) other.TransactionReport {
	keys := dayKeys(start, end)
	index := make(map[string]int, len(keys))
	points := make([]other.TransactionPoint, len(keys))
	for i, k := range keys {
		index[k] = i
		points[i] = other.TransactionPoint{Date: k}
	}

	var total int64
	for _, item := range items {
		revenue := int64(item.Quantity) * item.PriceAtOrder
		total += revenue

		i, ok := index[item.OrderCreatedAt.In(loc).Format(dayLayout)]
		if !ok {
			continue
		}
		switch item.ProductType {
		case models.ProductTypeDigital:
			points[i].Digital += revenue
		case models.ProductTypePhysical:
			points[i].Physical += revenue
		}
	}

	return other.TransactionReport{ChartData: points, TotalRevenue: total}
}
