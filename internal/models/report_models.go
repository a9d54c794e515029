package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod names the preset sales windows.
type ReportPeriod string

const (
	PeriodAll   ReportPeriod = "all"
	PeriodToday ReportPeriod = "today"
	PeriodWeek  ReportPeriod = "week"
	PeriodMonth ReportPeriod = "month"
)

// IsValidReportPeriod checks if the provided string is a known ReportPeriod.
func IsValidReportPeriod(period string) bool {
	switch ReportPeriod(period) {
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// ReportRequestParams holds common parameters for requesting reports.
// An explicit StartDate/EndDate pair wins over Period.
type ReportRequestParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
	Period    string `form:"period"`     // all, today, week, month
	TopN      int    `form:"top"`
}

// SalesRange is a resolved, inclusive time window. A nil bound is open.
type SalesRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Contains reports whether t falls inside the window.
func (r SalesRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// TopItem is an item name with the number of units sold.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DailyRevenue is the revenue collected on one calendar day.
type DailyRevenue struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReport aggregates a filtered set of sales.
type SalesReport struct {
	Range                  SalesRange                        `json:"range"`
	TotalRevenue           decimal.Decimal                   `json:"total_revenue"`
	TotalOrders            int                               `json:"total_orders"`
	AverageSale            decimal.Decimal                   `json:"average_sale"`
	TopSellingItems        []TopItem                         `json:"top_selling_items"`
	RevenueByPaymentMethod map[PaymentMethod]decimal.Decimal `json:"revenue_by_payment_method"`
	RevenueByOrderType     map[OrderType]decimal.Decimal     `json:"revenue_by_order_type"`
	AverageRevenuePerTable decimal.Decimal                   `json:"average_revenue_per_table"`
	RevenueByDay           []DailyRevenue                    `json:"revenue_by_day"`
}

// DashboardSummary holds key metrics for the dashboard.
type DashboardSummary struct {
	RevenueToday           decimal.Decimal                   `json:"revenue_today"`
	OrdersToday            int                               `json:"orders_today"`
	RevenueByPaymentMethod map[PaymentMethod]decimal.Decimal `json:"revenue_by_payment_method"`
	TopItemsToday          []TopItem                         `json:"top_items_today"`
	AvailableTables        int                               `json:"available_tables"`
	OccupiedTables         int                               `json:"occupied_tables"`
	ActiveOrders           int                               `json:"active_orders"`
	LowStockItems          int                               `json:"low_stock_items"`
	RecentSales            []Sale                            `json:"recent_sales"`
}
