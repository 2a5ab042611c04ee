package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Rakhulsr/go-kindergarten/app/db/testdb"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func TestReportWindow(t *testing.T) {
	loc := jakarta(t)
	// 20:30 UTC is already the next day in Jakarta.
	now := time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC)

	start, end := ReportWindow(now, loc, 7)

	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, loc), end)
}

func TestBuildDashboardReport_SeriesShape(t *testing.T) {
	loc := jakarta(t)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, loc)

	for _, days := range []int{7, 30, 90, 365} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			start, end := ReportWindow(now, loc, days)
			report := BuildDashboardReport(&other.ReportSnapshot{}, start, end, loc)

			require.Len(t, report.RevenueChart, days+1)
			assert.Equal(t, start.Format(dayLayout), report.RevenueChart[0].Date)
			assert.Equal(t, "2026-03-15", report.RevenueChart[days].Date)

			for i := 1; i < len(report.RevenueChart); i++ {
				prev, err := time.ParseInLocation(dayLayout, report.RevenueChart[i-1].Date, loc)
				require.NoError(t, err)
				cur, err := time.ParseInLocation(dayLayout, report.RevenueChart[i].Date, loc)
				require.NoError(t, err)
				assert.Equal(t, prev.AddDate(0, 0, 1), cur, "gap after %s", report.RevenueChart[i-1].Date)
			}
		})
	}
}

func TestBuildDashboardReport_Aggregates(t *testing.T) {
	loc := jakarta(t)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, loc)
	start, end := ReportWindow(now, loc, 7)

	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, loc) }
	snapshot := &other.ReportSnapshot{
		Items: []other.ReportItemRow{
			{Quantity: 1, PriceAtOrder: 80000, ProductName: "Buku Cerita", OrderStatus: models.OrderStatusSuccess, OrderCreatedAt: day(15, 9)},
			{Quantity: 2, PriceAtOrder: 150000, ProductName: "Seragam", OrderStatus: models.OrderStatusSuccess, OrderCreatedAt: day(15, 9)},
			{Quantity: 3, PriceAtOrder: 10000, ProductName: "Krayon", OrderStatus: models.OrderStatusPending, OrderCreatedAt: day(10, 23)},
			{Quantity: 1, PriceAtOrder: 30000, ProductName: "Krayon", OrderStatus: models.OrderStatusCanceled, OrderCreatedAt: day(9, 0)},
			{Quantity: 1, PriceAtOrder: 60000, ProductName: "Tas", OrderStatus: models.OrderStatusContacted, OrderCreatedAt: day(12, 12)},
			{Quantity: 1, PriceAtOrder: 60000, ProductName: "Botol", OrderStatus: models.OrderStatusContacted, OrderCreatedAt: day(12, 12)},
			{Quantity: 5, PriceAtOrder: 1000, ProductName: "Stiker", OrderStatus: models.OrderStatusPending, OrderCreatedAt: day(13, 8)},
		},
		StatusCounts: []other.StatusCountRow{
			{Status: models.OrderStatusSuccess, Count: 1},
			{Status: models.OrderStatusPending, Count: 2},
			{Status: models.OrderStatusCanceled, Count: 1},
			{Status: models.OrderStatusContacted, Count: 1},
		},
		Summary: other.SummaryCounts{ActiveProducts: 6, ActiveCategories: 2, Users: 3, OrdersInWindow: 5},
	}

	report := BuildDashboardReport(snapshot, start, end, loc)

	assert.Equal(t, int64(565000), report.TotalRevenue)
	assert.Equal(t, int64(380000), report.SuccessRevenue)
	assert.LessOrEqual(t, report.SuccessRevenue, report.TotalRevenue)

	var bucketSum int64
	for _, p := range report.RevenueChart {
		bucketSum += p.Revenue
	}
	assert.Equal(t, report.TotalRevenue, bucketSum)

	require.Len(t, report.TopProducts, 5)
	assert.Equal(t, other.TopProduct{Name: "Seragam", Revenue: 300000, Qty: 2}, report.TopProducts[0])
	assert.Equal(t, other.TopProduct{Name: "Buku Cerita", Revenue: 80000, Qty: 1}, report.TopProducts[1])
	// Equal revenue falls back to name order; Stiker drops out.
	assert.Equal(t, "Botol", report.TopProducts[2].Name)
	assert.Equal(t, other.TopProduct{Name: "Krayon", Revenue: 60000, Qty: 4}, report.TopProducts[3])
	assert.Equal(t, "Tas", report.TopProducts[4].Name)

	var statusSum int64
	for _, s := range report.StatusBreakdown {
		statusSum += s.Count
	}
	assert.Equal(t, report.TotalOrders, statusSum)
	assert.Equal(t, int64(6), report.TotalProducts)
	assert.Equal(t, int64(2), report.TotalCategories)
	assert.Equal(t, int64(3), report.TotalUsers)
}

func TestBuildStatusBreakdown(t *testing.T) {
	breakdown := BuildStatusBreakdown([]other.StatusCountRow{
		{Status: models.OrderStatusCanceled, Count: 4},
		{Status: "ARCHIVED", Count: 9},
	})

	require.Len(t, breakdown, 4)
	assert.Equal(t, []other.StatusBreakdown{
		{Status: models.OrderStatusPending, Label: "Menunggu", Count: 0},
		{Status: models.OrderStatusContacted, Label: "Dihubungi", Count: 0},
		{Status: models.OrderStatusSuccess, Label: "Berhasil", Count: 0},
		{Status: models.OrderStatusCanceled, Label: "Dibatalkan", Count: 4},
	}, breakdown)
}

func TestBuildTransactionReport(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, loc)
	start, end := ReportWindow(now, loc, 7)

	items := []other.ReportItemRow{
		{Quantity: 2, PriceAtOrder: 50000, ProductType: models.ProductTypeDigital, OrderCreatedAt: time.Date(2026, 3, 14, 8, 0, 0, 0, loc)},
		{Quantity: 1, PriceAtOrder: 120000, ProductType: models.ProductTypePhysical, OrderCreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, loc)},
		{Quantity: 1, PriceAtOrder: 70000, ProductType: models.ProductTypePhysical, OrderCreatedAt: time.Date(2026, 3, 8, 0, 0, 0, 0, loc)},
	}

	report := BuildTransactionReport(items, start, end, loc)

	require.Len(t, report.ChartData, 8)
	assert.Equal(t, other.TransactionPoint{Date: "2026-03-08", Physical: 70000}, report.ChartData[0])
	assert.Equal(t, other.TransactionPoint{Date: "2026-03-14", Digital: 100000, Physical: 120000}, report.ChartData[6])
	assert.Equal(t, other.TransactionPoint{Date: "2026-03-15"}, report.ChartData[7])
	assert.Equal(t, int64(290000), report.TotalRevenue)
}

func seedReportData(t *testing.T, now time.Time) *ReportService {
	t.Helper()
	db := testdb.Open(t)

	category := testdb.Category(t, db, "perlengkapan", true)
	testdb.Category(t, db, "arsip", false)
	book := testdb.Product(t, db, category, "Buku Cerita", models.ProductTypePhysical, 100000, nil)
	uniform := testdb.Product(t, db, category, "Seragam", models.ProductTypePhysical, 150000, nil)
	ebook := testdb.Product(t, db, category, "E-book Lagu", models.ProductTypeDigital, 50000, nil)
	testdb.User(t, db, "admin@tk.test", models.RoleAdmin)

	testdb.Order(t, db, models.OrderStatusSuccess, now.Add(-time.Hour),
		testdb.Item{Product: book, Quantity: 1, Price: 80000},
		testdb.Item{Product: uniform, Quantity: 2, Price: 150000},
	)
	testdb.Order(t, db, models.OrderStatusPending, now.AddDate(0, 0, -60),
		testdb.Item{Product: ebook, Quantity: 1, Price: 50000},
	)

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return NewReportService(repositories.NewReportRepository(db), loc).WithClock(func() time.Time { return now })
}

func TestReportService_DashboardReport(t *testing.T) {
	now := time.Date(2026, 3, 15, 5, 0, 0, 0, time.UTC)
	svc := seedReportData(t, now)

	report, err := svc.DashboardReport(context.Background(), DefaultReportDays)
	require.NoError(t, err)

	assert.Equal(t, int64(380000), report.TotalRevenue)
	assert.Equal(t, int64(380000), report.SuccessRevenue)
	assert.Equal(t, int64(1), report.TotalOrders)
	assert.Equal(t, int64(3), report.TotalProducts)
	assert.Equal(t, int64(1), report.TotalCategories)
	assert.Equal(t, int64(1), report.TotalUsers)

	require.Len(t, report.RevenueChart, DefaultReportDays+1)
	for i, p := range report.RevenueChart {
		if i == len(report.RevenueChart)-1 {
			assert.Equal(t, "2026-03-15", p.Date)
			assert.Equal(t, int64(380000), p.Revenue)
			continue
		}
		assert.Zero(t, p.Revenue, "day %s", p.Date)
	}

	assert.Equal(t, []other.TopProduct{
		{Name: "Seragam", Revenue: 300000, Qty: 2},
		{Name: "Buku Cerita", Revenue: 80000, Qty: 1},
	}, report.TopProducts)

	counts := map[string]int64{}
	for _, s := range report.StatusBreakdown {
		counts[s.Status] = s.Count
	}
	assert.Equal(t, map[string]int64{
		models.OrderStatusPending:   0,
		models.OrderStatusContacted: 0,
		models.OrderStatusSuccess:   1,
		models.OrderStatusCanceled:  0,
	}, counts)
}

func TestReportService_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 5, 0, 0, 0, time.UTC)
	svc := seedReportData(t, now)

	first, err := svc.DashboardReport(context.Background(), 90)
	require.NoError(t, err)
	second, err := svc.DashboardReport(context.Background(), 90)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	// The older pending order falls inside the wider window.
	assert.Equal(t, int64(430000), first.TotalRevenue)
	assert.Equal(t, int64(380000), first.SuccessRevenue)
	assert.Equal(t, int64(2), first.TotalOrders)
}

func TestReportService_TransactionsAndStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 5, 0, 0, 0, time.UTC)
	svc := seedReportData(t, now)

	tx, err := svc.TransactionReport(context.Background(), DefaultTransactionDays)
	require.NoError(t, err)
	require.Len(t, tx.ChartData, DefaultTransactionDays+1)
	assert.Equal(t, int64(430000), tx.TotalRevenue)

	last := tx.ChartData[len(tx.ChartData)-1]
	assert.Equal(t, int64(380000), last.Physical)
	assert.Zero(t, last.Digital)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &other.DashboardStats{TotalProducts: 3, TotalOrders: 2, TotalUsers: 1, TotalRevenue: 430000}, stats)
}
