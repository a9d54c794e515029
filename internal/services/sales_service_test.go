package services

import (
	"errors"
	"testing"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/shopspring/decimal"
)

// fixClock pins timeNow for the duration of the test.
func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func TestResolveRange(t *testing.T) {
	// Wednesday afternoon.
	now := time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	endOf := func(y int, m time.Month, d int) time.Time { return day(y, m, d).AddDate(0, 0, 1).Add(-time.Nanosecond) }

	tests := []struct {
		name     string
		params   models.ReportRequestParams
		wantFrom *time.Time
		wantTo   *time.Time
		wantErr  bool
	}{
		{name: "default is all time", params: models.ReportRequestParams{}},
		{name: "today", params: models.ReportRequestParams{Period: "today"}, wantFrom: ptrTime(day(2026, 10, 14)), wantTo: ptrTime(endOf(2026, 10, 14))},
		{name: "week starts monday", params: models.ReportRequestParams{Period: "WEEK"}, wantFrom: ptrTime(day(2026, 10, 12)), wantTo: ptrTime(endOf(2026, 10, 14))},
		{name: "month", params: models.ReportRequestParams{Period: "month"}, wantFrom: ptrTime(day(2026, 10, 1)), wantTo: ptrTime(endOf(2026, 10, 14))},
		{name: "explicit dates win", params: models.ReportRequestParams{Period: "today", StartDate: "2026-09-01", EndDate: "2026-09-30"}, wantFrom: ptrTime(day(2026, 9, 1)), wantTo: ptrTime(endOf(2026, 9, 30))},
		{name: "open ended start", params: models.ReportRequestParams{StartDate: "2026-09-01"}, wantFrom: ptrTime(day(2026, 9, 1))},
		{name: "unknown period", params: models.ReportRequestParams{Period: "year"}, wantErr: true},
		{name: "bad date", params: models.ReportRequestParams{StartDate: "01/09/2026"}, wantErr: true},
		{name: "inverted range", params: models.ReportRequestParams{StartDate: "2026-10-02", EndDate: "2026-10-01"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRange(tt.params, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error %v is not a validation error", err)
				}
				return
			}
			if !sameBound(got.From, tt.wantFrom) {
				t.Errorf("From = %v, want %v", got.From, tt.wantFrom)
			}
			if !sameBound(got.To, tt.wantTo) {
				t.Errorf("To = %v, want %v", got.To, tt.wantTo)
			}
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func sameBound(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func saleFixture(id string, at time.Time, method models.PaymentMethod, orderType models.OrderType, tableID string, lines ...models.OrderItem) models.Sale {
	order := models.Order{ID: "order-" + id, OrderType: orderType, Items: lines, Status: models.OrderStatusCompleted}
	if tableID != "" {
		order.Destination.TableID = &tableID
	}
	return models.Sale{ID: id, Order: order, Total: order.Total(), Timestamp: at, PaymentMethod: method}
}

func line(name, unitPrice string, qty int) models.OrderItem {
	return models.OrderItem{MenuItem: models.MenuItem{Name: name, Price: price(unitPrice)}, Quantity: qty}
}

func TestBuildSalesReport(t *testing.T) {
	d1 := time.Date(2026, time.October, 13, 20, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		saleFixture("s1", d1, models.PaymentCash, models.OrderTypeDineIn, "T1", line("Alitas", "18500", 2)),
		saleFixture("s2", d2, models.PaymentCard, models.OrderTypeDineIn, "T2", line("Soda", "4000", 3), line("Alitas", "18500", 1)),
		saleFixture("s3", d2, models.PaymentCash, models.OrderTypeDelivery, "", line("Burger", "21000", 1)),
		saleFixture("s4", d2, models.PaymentCash, models.OrderTypeDineIn, "T1", line("Soda", "4000", 1)),
	}

	report := BuildSalesReport(sales, 2, time.UTC)

	assertDecimal(t, "total revenue", report.TotalRevenue, "92500")
	if report.TotalOrders != 4 {
		t.Errorf("TotalOrders = %d, want 4", report.TotalOrders)
	}
	assertDecimal(t, "average sale", report.AverageSale, "23125")
	assertDecimal(t, "cash", report.RevenueByPaymentMethod[models.PaymentCash], "62000")
	assertDecimal(t, "card", report.RevenueByPaymentMethod[models.PaymentCard], "30500")
	assertDecimal(t, "transfer", report.RevenueByPaymentMethod[models.PaymentTransfer], "0")
	assertDecimal(t, "dine in", report.RevenueByOrderType[models.OrderTypeDineIn], "71500")
	assertDecimal(t, "delivery", report.RevenueByOrderType[models.OrderTypeDelivery], "21000")
	assertDecimal(t, "to go", report.RevenueByOrderType[models.OrderTypeToGo], "0")
	// Two distinct tables share 71500.
	assertDecimal(t, "per table", report.AverageRevenuePerTable, "35750")

	if len(report.TopSellingItems) != 2 {
		t.Fatalf("TopSellingItems = %+v, want 2 entries", report.TopSellingItems)
	}
	if report.TopSellingItems[0] != (models.TopItem{Name: "Soda", Quantity: 4}) ||
		report.TopSellingItems[1] != (models.TopItem{Name: "Alitas", Quantity: 3}) {
		t.Errorf("TopSellingItems = %+v", report.TopSellingItems)
	}

	if len(report.RevenueByDay) != 2 || report.RevenueByDay[0].Date != "2026-10-13" || report.RevenueByDay[1].Date != "2026-10-14" {
		t.Fatalf("RevenueByDay = %+v", report.RevenueByDay)
	}
	assertDecimal(t, "day 1", report.RevenueByDay[0].Revenue, "37000")
	assertDecimal(t, "day 2", report.RevenueByDay[1].Revenue, "55500")
}

func TestBuildSalesReport_Empty(t *testing.T) {
	report := BuildSalesReport(nil, 5, time.UTC)
	if !report.TotalRevenue.IsZero() || !report.AverageSale.IsZero() || report.TotalOrders != 0 {
		t.Errorf("empty report = %+v", report)
	}
	if len(report.RevenueByPaymentMethod) != len(models.PaymentMethods) {
		t.Errorf("payment methods = %v, want every method present", report.RevenueByPaymentMethod)
	}
	if report.TopSellingItems == nil || report.RevenueByDay == nil {
		t.Error("slices should be empty, not nil")
	}
}

func assertDecimal(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(price(want)) {
		t.Errorf("%s = %s, want %s", what, got, want)
	}
}

func TestSalesReportAndDashboard(t *testing.T) {
	fixClock(t, time.Date(2026, time.October, 14, 15, 0, 0, 0, time.Local))
	env := newTestEnv(t)
	chicken := env.addInventory(t, "Chicken", 1000, models.UnitGram, 500)
	wings := env.addMenuItem(t, MenuItemRequest{
		Name:   "Alitas",
		Price:  price("18500"),
		Recipe: []models.Ingredient{{InventoryItemID: chicken.ID, Quantity: 300}},
	})
	t1 := env.addTable(t, "T1")
	env.addTable(t, "T2")

	first := env.dineIn(t, t1.ID, wings.ID, 2)
	if _, err := env.orders.CompleteSale(first.ID, string(models.PaymentCash)); err != nil {
		t.Fatalf("CompleteSale() error = %v", err)
	}
	env.dineIn(t, t1.ID, wings.ID, 1)

	report, err := env.sales.Report(models.ReportRequestParams{Period: "today"})
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.TotalOrders != 1 {
		t.Errorf("TotalOrders = %d, want 1", report.TotalOrders)
	}
	assertDecimal(t, "total", report.TotalRevenue, "37000")

	if _, err := env.sales.Report(models.ReportRequestParams{TopN: -1}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative top error = %v, want ErrValidation", err)
	}

	dash, err := env.sales.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	assertDecimal(t, "revenue today", dash.RevenueToday, "37000")
	if dash.OrdersToday != 1 || dash.ActiveOrders != 1 {
		t.Errorf("orders today = %d, active = %d", dash.OrdersToday, dash.ActiveOrders)
	}
	if dash.OccupiedTables != 1 || dash.AvailableTables != 1 {
		t.Errorf("tables occupied = %d, available = %d", dash.OccupiedTables, dash.AvailableTables)
	}
	if dash.LowStockItems != 1 {
		t.Errorf("LowStockItems = %d, want 1", dash.LowStockItems)
	}
	if len(dash.RecentSales) != 1 {
		t.Errorf("RecentSales = %d, want 1", len(dash.RecentSales))
	}

	sales, err := env.sales.ListSales(models.ReportRequestParams{})
	if err != nil || len(sales) != 1 {
		t.Fatalf("ListSales() = %d sales, err %v", len(sales), err)
	}
	if _, err := env.sales.GetSale(sales[0].ID); err != nil {
		t.Errorf("GetSale() error = %v", err)
	}
	if _, err := env.sales.GetSale("missing"); !errors.Is(err, ErrSaleNotFound) {
		t.Errorf("GetSale(missing) error = %v, want ErrSaleNotFound", err)
	}
}
