package other

import "time"

// ReportItemRow is one order item joined with its product and order.
type ReportItemRow struct {
	Quantity       int
	PriceAtOrder   int64
	ProductName    string
	ProductType    string
	OrderStatus    string
	OrderCreatedAt time.Time
}

type StatusCountRow struct {
	Status string
	Count  int64
}

type SummaryCounts struct {
	ActiveProducts   int64
	ActiveCategories int64
	Users            int64
	OrdersInWindow   int64
}

// ReportSnapshot holds everything read for one dashboard report, taken inside a
// single read transaction.
type ReportSnapshot struct {
	Items        []ReportItemRow
	StatusCounts []StatusCountRow
	Summary      SummaryCounts
}

type StatusBreakdown struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

type TopProduct struct {
	Name    string `json:"name"`
	Revenue int64  `json:"revenue"`
	Qty     int64  `json:"qty"`
}

type RevenuePoint struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

type DashboardReport struct {
	TotalRevenue    int64             `json:"totalRevenue"`
	SuccessRevenue  int64             `json:"successRevenue"`
	TotalOrders     int64             `json:"totalOrders"`
	TotalProducts   int64             `json:"totalProducts"`
	TotalCategories int64             `json:"totalCategories"`
	TotalUsers      int64             `json:"totalUsers"`
	StatusBreakdown []StatusBreakdown `json:"statusBreakdown"`
	TopProducts     []TopProduct      `json:"topProducts"`
	RevenueChart    []RevenuePoint    `json:"revenueChart"`
}

type TransactionPoint struct {
	Date     string `json:"date"`
	Digital  int64  `json:"digital"`
	Physical int64  `json:"physical"`
}

type TransactionReport struct {
	ChartData    []TransactionPoint `json:"chartData"`
	TotalRevenue int64              `json:"totalRevenue"`
}

type DashboardStats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalRevenue  int64 `json:"totalRevenue"`
}
