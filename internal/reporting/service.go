// Package reporting is the read side: time-windowed aggregation over
// completed orders, dashboard statistics, and order/customer listings. Only
// completed orders contribute to sales figures; cancelled and in-flight
// orders never do.
package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/domain"
)

// DefaultLowStockThreshold flags products needing staff attention.
const DefaultLowStockThreshold = 10

type Service struct {
	db                *gorm.DB
	lowStockThreshold int
}

func NewService(db *gorm.DB, lowStockThreshold int) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &Service{db: db, lowStockThreshold: lowStockThreshold}
}

// LowStockThreshold returns the configured threshold.
func (s *Service) LowStockThreshold() int {
	return s.lowStockThreshold
}

func (s *Service) completedItems(ctx context.Context, w Window) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", domain.OrderCompleted).
		Where("orders.created_at >= ? AND orders.created_at < ?", w.Start, w.End)
}

// SalesTotal sums quantity x snapshot price over completed orders in the
// window. Delivery fees are not sales and are excluded.
func (s *Service) SalesTotal(ctx context.Context, w Window) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := s.completedItems(ctx, w).
		Select("COALESCE(SUM(order_items.quantity * order_items.price), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sales total")
	}
	return row.Total, nil
}

// ProductSales is one row of the top-products report.
type ProductSales struct {
	ProductID     int64           `json:"product_id" csv:"product_id"`
	ProductName   string          `json:"product_name" csv:"product_name"`
	Category      string          `json:"category" csv:"category"`
	TotalQuantity int64           `json:"total_quantity" csv:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" csv:"total_revenue"`
}

// TopProducts ranks products by quantity sold within the window, completed
// orders only.
func (s *Service) TopProducts(ctx context.Context, w Window, limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := s.completedItems(ctx, w).
		Joins("JOIN products ON products.id = order_items.product_id").
		Select(`order_items.product_id AS product_id,
			MAX(products.name) AS product_name,
			MAX(products.category) AS category,
			SUM(order_items.quantity) AS total_quantity,
			SUM(order_items.quantity * order_items.price) AS total_revenue`).
		Group("order_items.product_id").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "top products")
	}
	return rows, nil
}

// DailyPoint is one bar of the dashboard sales chart.
type DailyPoint struct {
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"`
	Total   decimal.Decimal `json:"total"`
	Percent int             `json:"percent"`
}

// DailySeries produces per-day completed sales for the trailing n days,
// with bar heights scaled to the best day.
func (s *Service) DailySeries(ctx context.Context, now time.Time, days int) ([]DailyPoint, error) {
	points := make([]DailyPoint, 0, days)
	start := startOfDay(now).AddDate(0, 0, -(days - 1))

	maxTotal := decimal.Zero
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		total, err := s.SalesTotal(ctx, Window{Start: day, End: day.AddDate(0, 0, 1)})
		if err != nil {
			return nil, err
		}
		if total.GreaterThan(maxTotal) {
			maxTotal = total
		}
		points = append(points, DailyPoint{
			Date:  day,
			Label: day.Format("Mon"),
			Total: total,
		})
	}

	if maxTotal.Sign() > 0 {
		hundred := decimal.NewFromInt(100)
		for i := range points {
			points[i].Percent = int(points[i].Total.Div(maxTotal).Mul(hundred).IntPart())
		}
	}
	return points, nil
}

// OrderSummary is an order listing row with aggregates attached.
type OrderSummary struct {
	ID             int64              `json:"id"`
	CustomerID     *int64             `json:"customer_id"`
	CustomerName   string             `json:"customer_name"`
	Status         domain.OrderStatus `json:"status"`
	DeliveryMethod string             `json:"delivery_method"`
	PaymentMethod  string             `json:"payment_method"`
	DeliveryFee    decimal.Decimal    `json:"delivery_fee"`
	ItemsCount     int64              `json:"items_count"`
	ItemsTotal     decimal.Decimal    `json:"items_total"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TotalAmount is the order grand total: items plus delivery fee.
func (o OrderSummary) TotalAmount() decimal.Decimal {
	return o.ItemsTotal.Add(o.DeliveryFee)
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status     domain.OrderStatus
	CustomerID int64
	Statuses   []domain.OrderStatus
	Limit      int
}

// ListOrders returns order summaries newest first.
func (s *Service) ListOrders(ctx context.Context, filter OrderFilter) ([]OrderSummary, error) {
	q := s.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id, orders.customer_id, orders.status, orders.delivery_method,
			orders.payment_method, orders.delivery_fee, orders.created_at,
			COALESCE(MAX(sys_user.username), '') AS customer_name,
			COUNT(order_items.id) AS items_count,
			COALESCE(SUM(order_items.quantity * order_items.price), 0) AS items_total`).
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN sys_user ON sys_user.id = orders.customer_id").
		Group("orders.id, orders.customer_id, orders.status, orders.delivery_method, orders.payment_method, orders.delivery_fee, orders.created_at").
		Order("orders.created_at DESC")

	if filter.Status != "" {
		q = q.Where("orders.status = ?", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("orders.status IN ?", filter.Statuses)
	}
	if filter.CustomerID != 0 {
		q = q.Where("orders.customer_id = ?", filter.CustomerID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []OrderSummary
	if err := q.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return rows, nil
}

// CustomerOverview are the customer dashboard numbers.
type CustomerOverview struct {
	TotalOrders       int64           `json:"total_orders"`
	PendingDeliveries int64           `json:"pending_deliveries"`
	CompletedOrders   int64           `json:"completed_orders"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
}

// CustomerStats computes a customer's order counts and completed spend
// (items plus delivery fees on completed orders).
func (s *Service) CustomerStats(ctx context.Context, customerID int64) (*CustomerOverview, error) {
	var out CustomerOverview

	base := s.db.WithContext(ctx).Model(&domain.Order{}).Where("customer_id = ?", customerID)
	if err := base.Session(&gorm.Session{}).Count(&out.TotalOrders).Error; err != nil {
		return nil, errors.Wrap(err, "count orders")
	}
	if err := base.Session(&gorm.Session{}).
		Where("status IN ?", domain.ActiveOrderStatuses).
		Count(&out.PendingDeliveries).Error; err != nil {
		return nil, errors.Wrap(err, "count pending")
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", domain.OrderCompleted).
		Count(&out.CompletedOrders).Error; err != nil {
		return nil, errors.Wrap(err, "count completed")
	}

	var items struct {
		Total decimal.Decimal
	}
	if err := s.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ? AND orders.status = ?", customerID, domain.OrderCompleted).
		Select("COALESCE(SUM(order_items.quantity * order_items.price), 0) AS total").
		Scan(&items).Error; err != nil {
		return nil, errors.Wrap(err, "sum spend")
	}

	var fees struct {
		Total decimal.Decimal
	}
	if err := s.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("customer_id = ? AND status = ?", customerID, domain.OrderCompleted).
		Select("COALESCE(SUM(delivery_fee), 0) AS total").
		Scan(&fees).Error; err != nil {
		return nil, errors.Wrap(err, "sum delivery fees")
	}

	out.TotalSpent = items.Total.Add(fees.Total)
	return &out, nil
}

// CustomerSummary is one row of the admin customer listing.
type CustomerSummary struct {
	ID          int64           `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	LastOrderAt *time.Time      `json:"last_order_at"`
}

// ListCustomers aggregates order counts and item spend per customer account.
func (s *Service) ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	var rows []CustomerSummary
	err := s.db.WithContext(ctx).
		Table("sys_user").
		Select(`sys_user.id, sys_user.username, sys_user.email,
			sys_user.first_name, sys_user.last_name,
			COUNT(DISTINCT orders.id) AS total_orders,
			COALESCE(SUM(order_items.quantity * order_items.price), 0) AS total_spent,
			MAX(orders.created_at) AS last_order_at`).
		Joins("LEFT JOIN orders ON orders.customer_id = sys_user.id").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("sys_user.level = ?", domain.LevelCustomer).
		Group("sys_user.id, sys_user.username, sys_user.email, sys_user.first_name, sys_user.last_name").
		Order("last_order_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return rows, nil
}

// DashboardStats are the admin landing page numbers.
type DashboardStats struct {
	TodaysSales        decimal.Decimal `json:"todays_sales"`
	TotalOrdersToday   int64           `json:"total_orders_today"`
	PendingOrdersToday int64           `json:"pending_orders_today"`
	LowStockItems      int64           `json:"low_stock_items"`
	LowStockThreshold  int             `json:"low_stock_threshold"`
	Chart              []DailyPoint    `json:"chart"`
	RecentOrders       []OrderSummary  `json:"recent_orders"`
}

// Dashboard assembles the admin dashboard.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	today := Today(now)
	out := DashboardStats{LowStockThreshold: s.lowStockThreshold}

	var err error
	if out.TodaysSales, err = s.SalesTotal(ctx, today); err != nil {
		return nil, err
	}

	ordersToday := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("created_at >= ? AND created_at < ?", today.Start, today.End)
	if err := ordersToday.Session(&gorm.Session{}).Count(&out.TotalOrdersToday).Error; err != nil {
		return nil, errors.Wrap(err, "count today orders")
	}
	if err := ordersToday.Session(&gorm.Session{}).
		Where("status = ?", domain.OrderPending).
		Count(&out.PendingOrdersToday).Error; err != nil {
		return nil, errors.Wrap(err, "count pending orders")
	}

	if err := s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("is_active = ? AND stock_quantity <= ?", true, s.lowStockThreshold).
		Count(&out.LowStockItems).Error; err != nil {
		return nil, errors.Wrap(err, "count low stock")
	}

	if out.Chart, err = s.DailySeries(ctx, now, 7); err != nil {
		return nil, err
	}
	if out.RecentOrders, err = s.ListOrders(ctx, OrderFilter{Limit: 5}); err != nil {
		return nil, err
	}
	return &out, nil
}

// LowStockProducts lists active products at or under the threshold,
// emptiest first.
func (s *Service) LowStockProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND stock_quantity <= ?", true, s.lowStockThreshold).
		Order("stock_quantity ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "low stock products")
	}
	return rows, nil
}
