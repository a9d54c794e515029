package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/models"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	defaultTopN     = 5
	maxTopN         = 50
	dashboardTopN   = 3
	dashboardRecent = 5
)

// --- SalesService Interface ---
type SalesService interface {
	ListSales(params models.ReportRequestParams) ([]models.Sale, error)
	GetSale(saleID string) (*models.Sale, error)
	Report(params models.ReportRequestParams) (*models.SalesReport, error)
	Dashboard() (*models.DashboardSummary, error)
}

type salesService struct {
	saleRepo      repositories.SaleRepository
	orderRepo     repositories.OrderRepository
	tableRepo     repositories.TableRepository
	inventoryRepo repositories.InventoryRepository
}

// NewSalesService creates a new instance of SalesService.
func NewSalesService(
	sr repositories.SaleRepository,
	or repositories.OrderRepository,
	tr repositories.TableRepository,
	ir repositories.InventoryRepository,
) SalesService {
	return &salesService{saleRepo: sr, orderRepo: or, tableRepo: tr, inventoryRepo: ir}
}

// ResolveRange turns request parameters into a concrete window. Explicit dates win over the period;
// an end date includes the whole day. Weeks start on Monday.
func ResolveRange(params models.ReportRequestParams, now time.Time) (models.SalesRange, error) {
	loc := now.Location()
	var rng models.SalesRange

	if params.StartDate != "" || params.EndDate != "" {
		if params.StartDate != "" {
			from, err := utils.ParseDate(params.StartDate, loc)
			if err != nil {
				return rng, fmt.Errorf("%w: start_date: %v", ErrValidation, err)
			}
			rng.From = &from
		}
		if params.EndDate != "" {
			end, err := utils.ParseDate(params.EndDate, loc)
			if err != nil {
				return rng, fmt.Errorf("%w: end_date: %v", ErrValidation, err)
			}
			to := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
			rng.To = &to
		}
		if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
			return rng, fmt.Errorf("%w: start_date must not be after end_date", ErrValidation)
		}
		return rng, nil
	}

	period := strings.ToLower(strings.TrimSpace(params.Period))
	if period == "" {
		period = string(models.PeriodAll)
	}
	if !models.IsValidReportPeriod(period) {
		return rng, fmt.Errorf("%w: unknown period '%s'", ErrValidation, params.Period)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	endOfToday := today.AddDate(0, 0, 1).Add(-time.Nanosecond)
	switch models.ReportPeriod(period) {
	case models.PeriodToday:
		rng.From = &today
	case models.PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7 // days since Monday
		monday := today.AddDate(0, 0, -offset)
		rng.From = &monday
	case models.PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		rng.From = &first
	default:
		return rng, nil
	}
	rng.To = &endOfToday
	return rng, nil
}

func (s *salesService) filtered(rng models.SalesRange) ([]models.Sale, error) {
	sales, err := s.saleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	out := []models.Sale{}
	for _, sale := range sales {
		if rng.Contains(sale.Timestamp) {
			out = append(out, sale)
		}
	}
	return out, nil
}

// ListSales returns the sales in the requested window, newest first.
func (s *salesService) ListSales(params models.ReportRequestParams) ([]models.Sale, error) {
	rng, err := ResolveRange(params, timeNow())
	if err != nil {
		return nil, err
	}
	sales, err := s.filtered(rng)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Timestamp.After(sales[j].Timestamp) })
	return sales, nil
}

func (s *salesService) GetSale(saleID string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrSaleNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to get sale %s: %w", saleID, err)
	}
	return sale, nil
}

func (s *salesService) Report(params models.ReportRequestParams) (*models.SalesReport, error) {
	if params.TopN < 0 {
		return nil, fmt.Errorf("%w: top must not be negative", ErrValidation)
	}
	topN := params.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	now := timeNow()
	rng, err := ResolveRange(params, now)
	if err != nil {
		return nil, err
	}
	sales, err := s.filtered(rng)
	if err != nil {
		return nil, err
	}
	report := BuildSalesReport(sales, topN, now.Location())
	report.Range = rng
	return report, nil
}

// BuildSalesReport aggregates sales. Every payment method and order type key is always present.
func BuildSalesReport(sales []models.Sale, topN int, loc *time.Location) *models.SalesReport {
	report := &models.SalesReport{
		TotalRevenue:           decimal.Zero,
		AverageSale:            decimal.Zero,
		AverageRevenuePerTable: decimal.Zero,
		RevenueByPaymentMethod: make(map[models.PaymentMethod]decimal.Decimal, len(models.PaymentMethods)),
		RevenueByOrderType: map[models.OrderType]decimal.Decimal{
			models.OrderTypeDineIn:   decimal.Zero,
			models.OrderTypeDelivery: decimal.Zero,
			models.OrderTypeToGo:     decimal.Zero,
		},
		TopSellingItems: []models.TopItem{},
		RevenueByDay:    []models.DailyRevenue{},
	}
	for _, m := range models.PaymentMethods {
		report.RevenueByPaymentMethod[m] = decimal.Zero
	}

	quantities := map[string]int{}
	byDay := map[string]decimal.Decimal{}
	tableRevenue := decimal.Zero
	tables := map[string]bool{}

	for _, sale := range sales {
		report.TotalRevenue = report.TotalRevenue.Add(sale.Total)
		report.TotalOrders++
		report.RevenueByPaymentMethod[sale.PaymentMethod] = report.RevenueByPaymentMethod[sale.PaymentMethod].Add(sale.Total)
		report.RevenueByOrderType[sale.Order.OrderType] = report.RevenueByOrderType[sale.Order.OrderType].Add(sale.Total)

		day := sale.Timestamp.In(loc).Format(utils.DateLayout)
		byDay[day] = byDay[day].Add(sale.Total)

		for _, item := range sale.Order.Items {
			quantities[item.Name] += item.Quantity
		}
		if sale.Order.OrderType == models.OrderTypeDineIn && sale.Order.Destination.TableID != nil {
			tables[*sale.Order.Destination.TableID] = true
			tableRevenue = tableRevenue.Add(sale.Total)
		}
	}

	if report.TotalOrders > 0 {
		report.AverageSale = report.TotalRevenue.Div(decimal.NewFromInt(int64(report.TotalOrders))).Round(2)
	}
	if len(tables) > 0 {
		report.AverageRevenuePerTable = tableRevenue.Div(decimal.NewFromInt(int64(len(tables)))).Round(2)
	}

	report.TopSellingItems = topItems(quantities, topN)

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		report.RevenueByDay = append(report.RevenueByDay, models.DailyRevenue{Date: d, Revenue: byDay[d]})
	}
	return report
}

// topItems orders by quantity descending, then by name.
func topItems(quantities map[string]int, n int) []models.TopItem {
	items := make([]models.TopItem, 0, len(quantities))
	for name, q := range quantities {
		items = append(items, models.TopItem{Name: name, Quantity: q})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func (s *salesService) Dashboard() (*models.DashboardSummary, error) {
	now := timeNow()
	rng, err := ResolveRange(models.ReportRequestParams{Period: string(models.PeriodToday)}, now)
	if err != nil {
		return nil, err
	}
	todaySales, err := s.filtered(rng)
	if err != nil {
		return nil, err
	}
	today := BuildSalesReport(todaySales, dashboardTopN, now.Location())

	summary := &models.DashboardSummary{
		RevenueToday:           today.TotalRevenue,
		OrdersToday:            today.TotalOrders,
		RevenueByPaymentMethod: today.RevenueByPaymentMethod,
		TopItemsToday:          today.TopSellingItems,
	}

	tables, err := s.tableRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	for _, t := range tables {
		switch t.Status {
		case models.TableStatusAvailable:
			summary.AvailableTables++
		case models.TableStatusOccupied:
			summary.OccupiedTables++
		}
	}

	orders, err := s.orderRepo.GetOrders(models.OrderFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	for _, o := range orders {
		if !o.Status.IsTerminal() {
			summary.ActiveOrders++
		}
	}

	items, err := s.inventoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	for _, it := range items {
		if it.IsLowStock() {
			summary.LowStockItems++
		}
	}

	summary.RecentSales, err = s.saleRepo.Recent(dashboardRecent)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sales: %w", err)
	}
	return summary, nil
}
