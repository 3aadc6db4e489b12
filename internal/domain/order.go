package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the closed set of order workflow states.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status, in workflow order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderPreparing,
	OrderOutForDelivery,
	OrderCompleted,
	OrderCancelled,
}

// ActiveOrderStatuses are the states a customer still has a delivery pending in.
var ActiveOrderStatuses = []OrderStatus{
	OrderPending,
	OrderPreparing,
	OrderOutForDelivery,
}

// Valid reports whether s is one of the five workflow states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderOutForDelivery, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Display returns the human readable label for a status.
func (s OrderStatus) Display() string {
	switch s {
	case OrderPending:
		return "Pending"
	case OrderPreparing:
		return "Preparing"
	case OrderOutForDelivery:
		return "Out for delivery"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	}
	return string(s)
}

// ParseOrderStatus validates a raw status value from a request. Any staff
// actor may move an order to any valid state; only unknown values are
// rejected.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid order status %q", raw)
	}
	return s, nil
}

// Order is a checked-out cart. CustomerID is nullable so order history
// survives customer account removal.
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     *int64          `gorm:"index" json:"customer_id"`
	Customer       *SysUser        `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Status         OrderStatus     `gorm:"size:20;index;default:pending" json:"status"`
	DeliveryMethod string          `gorm:"size:20" json:"delivery_method"`
	PaymentMethod  string          `gorm:"size:20" json:"payment_method"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(12,2)" json:"delivery_fee"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// Total sums quantity x snapshot price over the loaded items plus the
// delivery fee. Items must be preloaded.
func (o *Order) Total() decimal.Decimal {
	total := o.DeliveryFee
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal())
	}
	return total
}

// OrderItem is one order line. Price is the product price captured at order
// time and is never recomputed from the catalog.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"index;not null" json:"order_id"`
	ProductID int64           `gorm:"index;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal is quantity times the snapshot price.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
