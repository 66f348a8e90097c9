package service

import (
	"context"
	"sort"
	"time"

	"akabari-manager/internal/models"
	"akabari-manager/internal/store"
	"akabari-manager/internal/util"
)

// Stock report statuses
const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
	StockStatusIn  = "In Stock"
)

// ReportService derives read models from the ledger. Nothing here
// mutates state.
type ReportService struct {
	store *store.Store
}

// NewReportService creates a new report service.
func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// DashboardSummary is the headline view of the business.
type DashboardSummary struct {
	RevenueToday  int64 `json:"revenue_today"`
	ExpensesToday int64 `json:"expenses_today"`
	EarningsToday int64 `json:"earnings_today"`
	TotalRevenue  int64 `json:"total_revenue"`
	TotalExpenses int64 `json:"total_expenses"`
	TotalDebt     int64 `json:"total_debt"`
	LowStockCount int   `json:"low_stock_count"`
	OpenOrders    int   `json:"open_orders"`
}

// SalesReportItem is a sale line with its product name resolved.
type SalesReportItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// SalesReportEntry is one sale in the sales report.
type SalesReportEntry struct {
	ID           string            `json:"id"`
	Items        []SalesReportItem `json:"items"`
	Total        int64             `json:"total"`
	TotalLabel   string            `json:"total_label"`
	AmountPaid   int64             `json:"amount_paid"`
	CustomerName string            `json:"customer_name"`
	WaiterName   string            `json:"waiter_name,omitempty"`
	Date         time.Time         `json:"date"`
	DateLabel    string            `json:"date_label"`
	Status       string            `json:"status"`
}

// StockReportEntry is one product's inventory position.
type StockReportEntry struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	UnitsSold         int    `json:"units_sold"`
	Status            string `json:"status"`
}

// BestSeller is a product ranked by units sold.
type BestSeller struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
	Revenue   int64  `json:"revenue"`
}

// OverviewPoint is one day in the weekly revenue/expense chart.
type OverviewPoint struct {
	Day      string `json:"day"`
	Revenue  int64  `json:"revenue"`
	Expenses int64  `json:"expenses"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Dashboard computes the headline summary.
func (r *ReportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	_, span := util.StartSpan(ctx, "ReportService.Dashboard")
	defer span.End()

	now := time.Now()
	summary := &DashboardSummary{TotalDebt: r.store.TotalDebt()}

	for _, sale := range r.store.ListSales() {
		summary.TotalRevenue += sale.Total
		if sameDay(sale.Date, now) {
			summary.RevenueToday += sale.Total
		}
	}
	for _, exp := range r.store.ListExpenses() {
		summary.TotalExpenses += exp.Amount
		if sameDay(exp.Date, now) {
			summary.ExpensesToday += exp.Amount
		}
	}
	summary.EarningsToday = summary.RevenueToday - summary.ExpensesToday

	for _, p := range r.store.ListProducts() {
		if p.Stock <= p.LowStockThreshold {
			summary.LowStockCount++
		}
	}
	summary.OpenOrders = len(r.store.ListOpenOrders())
	return summary, nil
}

// SalesReport returns the full sales log, newest first, with product
// names resolved and the credit status of each sale.
func (r *ReportService) SalesReport(ctx context.Context) ([]SalesReportEntry, error) {
	_, span := util.StartSpan(ctx, "ReportService.SalesReport")
	defer span.End()

	names := make(map[string]string)
	for _, p := range r.store.ListProducts() {
		names[p.ID] = p.Name
	}

	sales := r.store.ListSales()
	entries := make([]SalesReportEntry, 0, len(sales))
	for _, sale := range sales {
		items := make([]SalesReportItem, 0, len(sale.Items))
		for _, it := range sale.Items {
			name, ok := names[it.ProductID]
			if !ok {
				name = it.ProductID
			}
			items = append(items, SalesReportItem{
				ProductName: name,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
		}
		status := "Paid"
		if sale.OnCredit() {
			status = "On Credit"
		}
		entries = append(entries, SalesReportEntry{
			ID:           sale.ID,
			Items:        items,
			Total:        sale.Total,
			TotalLabel:   util.FormatRWF(sale.Total),
			AmountPaid:   sale.AmountPaid,
			CustomerName: sale.CustomerName,
			WaiterName:   sale.WaiterName,
			Date:         sale.Date,
			DateLabel:    util.FormatDateTime(sale.Date),
			Status:       status,
		})
	}
	return entries, nil
}

// DebtReport returns the customers currently owing money.
func (r *ReportService) DebtReport(ctx context.Context) ([]models.Customer, error) {
	_, span := util.StartSpan(ctx, "ReportService.DebtReport")
	defer span.End()

	debtors := make([]models.Customer, 0)
	for _, c := range r.store.ListCustomers() {
		if c.Debt > 0 {
			debtors = append(debtors, c)
		}
	}
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].Debt > debtors[j].Debt })
	return debtors, nil
}

// soldByProduct reduces the sales ledger into units sold per product.
func (r *ReportService) soldByProduct() map[string]int {
	sold := make(map[string]int)
	for _, sale := range r.store.ListSales() {
		for _, it := range sale.Items {
			sold[it.ProductID] += it.Quantity
		}
	}
	return sold
}

// StockReport returns each product's inventory position.
func (r *ReportService) StockReport(ctx context.Context) ([]StockReportEntry, error) {
	_, span := util.StartSpan(ctx, "ReportService.StockReport")
	defer span.End()

	sold := r.soldByProduct()
	products := r.store.ListProducts()
	entries := make([]StockReportEntry, 0, len(products))
	for _, p := range products {
		status := StockStatusIn
		switch {
		case p.Stock == 0:
			status = StockStatusOut
		case p.Stock <= p.LowStockThreshold:
			status = StockStatusLow
		}
		entries = append(entries, StockReportEntry{
			ID:                p.ID,
			Name:              p.Name,
			Category:          p.Category,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			UnitsSold:         sold[p.ID],
			Status:            status,
		})
	}
	return entries, nil
}

// BestSellers returns the top products by units sold.
func (r *ReportService) BestSellers(ctx context.Context, limit int) ([]BestSeller, error) {
	_, span := util.StartSpan(ctx, "ReportService.BestSellers")
	defer span.End()

	sold := r.soldByProduct()
	revenue := make(map[string]int64)
	for _, sale := range r.store.ListSales() {
		for _, it := range sale.Items {
			revenue[it.ProductID] += it.Price
		}
	}

	names := make(map[string]string)
	for _, p := range r.store.ListProducts() {
		names[p.ID] = p.Name
	}

	sellers := make([]BestSeller, 0, len(sold))
	for id, qty := range sold {
		name, ok := names[id]
		if !ok {
			name = id
		}
		sellers = append(sellers, BestSeller{
			ProductID: id,
			Name:      name,
			UnitsSold: qty,
			Revenue:   revenue[id],
		})
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].UnitsSold != sellers[j].UnitsSold {
			return sellers[i].UnitsSold > sellers[j].UnitsSold
		}
		return sellers[i].Name < sellers[j].Name
	})
	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}
	return sellers, nil
}

// Overview buckets the last seven days of revenue and expenses,
// oldest day first.
func (r *ReportService) Overview(ctx context.Context) ([]OverviewPoint, error) {
	_, span := util.StartSpan(ctx, "ReportService.Overview")
	defer span.End()

	now := time.Now()
	points := make([]OverviewPoint, 7)
	days := make([]time.Time, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6)
		days[i] = day
		points[i] = OverviewPoint{Day: day.Format("Mon")}
	}

	for _, sale := range r.store.ListSales() {
		for i, day := range days {
			if sameDay(sale.Date, day) {
				points[i].Revenue += sale.Total
				break
			}
		}
	}
	for _, exp := range r.store.ListExpenses() {
		for i, day := range days {
			if sameDay(exp.Date, day) {
				points[i].Expenses += exp.Amount
				break
			}
		}
	}
	return points, nil
}
