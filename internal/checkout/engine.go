// Package checkout converts a session cart into a persisted order. The cart
// is normalized against current catalog state, clamped to available stock,
// and committed in a single transaction that snapshots prices and decrements
// inventory.
package checkout

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/cart"
	"github.com/greenbasket/greenbasket/internal/domain"
)

// ErrEmptyCart means no cart line survived validation and stock clamping;
// no order is created and the caller should reset the cart.
var ErrEmptyCart = errors.New("checkout: no valid items to order")

// Line is a normalized order line: a sellable product and a whole-unit
// quantity already clamped to stock.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Subtotal is the line quantity times the current product price.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// BuildLines normalizes cart items against catalog state. Entries referencing
// unknown or inactive products are dropped, as are non-positive quantities and
// products with no stock. Kilogram quantities round to the nearest whole unit,
// ties to even, with a floor of one, then clamp to the product's stock.
func BuildLines(items []cart.Item, products map[int64]*domain.Product) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		if item.Quantity.Sign() <= 0 {
			continue
		}
		product, ok := products[item.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		if product.StockQuantity <= 0 {
			continue
		}

		units := int(item.Quantity.RoundBank(0).IntPart())
		if units <= 0 {
			// a positive fractional quantity still buys one unit
			units = 1
		}
		if units > product.StockQuantity {
			units = product.StockQuantity
		}

		lines = append(lines, Line{Product: *product, Quantity: units})
	}
	return lines
}

// Receipt reports a committed checkout back to the caller.
type Receipt struct {
	OrderID     int64           `json:"order_id"`
	Fulfillment Fulfillment     `json:"fulfillment"`
	Lines       []Line          `json:"-"`
	ItemsTotal  decimal.Decimal `json:"items_total"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// QuoteLine is a priced cart line as shown on the cart and checkout preview
// screens. Quantities stay in kilograms here; normalization happens only at
// commit time.
type QuoteLine struct {
	Product  domain.Product  `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Quote is a checkout preview: priced lines plus the resolved fulfillment.
type Quote struct {
	Lines         []QuoteLine     `json:"lines"`
	ItemsTotal    decimal.Decimal `json:"items_total"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Fulfillment   Fulfillment     `json:"fulfillment"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Service is the checkout engine.
type Service struct {
	db          *gorm.DB
	deliveryFee decimal.Decimal
}

func NewService(db *gorm.DB, deliveryFee decimal.Decimal) *Service {
	// zero is a valid fee (free delivery); only a negative value falls back
	if deliveryFee.Sign() < 0 {
		deliveryFee = DefaultDeliveryFee
	}
	return &Service{db: db, deliveryFee: deliveryFee}
}

// DeliveryFee returns the configured flat delivery fee.
func (s *Service) DeliveryFee() decimal.Decimal {
	return s.deliveryFee
}

func (s *Service) activeProducts(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	products := make(map[int64]*domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	var rows []domain.Product
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load cart products")
	}
	for i := range rows {
		products[rows[i].ID] = &rows[i]
	}
	return products, nil
}

// PriceCart prices the raw cart lines against active products. Lines whose
// product is missing or inactive are skipped.
func (s *Service) PriceCart(ctx context.Context, crt *cart.Cart) ([]QuoteLine, decimal.Decimal, decimal.Decimal, error) {
	products, err := s.activeProducts(ctx, crt.ProductIDs())
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}

	lines := make([]QuoteLine, 0, crt.Len())
	itemsTotal := decimal.Zero
	totalQty := decimal.Zero
	for _, item := range crt.Items() {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		subtotal := product.Price.Mul(item.Quantity)
		lines = append(lines, QuoteLine{
			Product:  *product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		itemsTotal = itemsTotal.Add(subtotal)
		totalQty = totalQty.Add(item.Quantity)
	}
	return lines, itemsTotal, totalQty, nil
}

// Quote builds the checkout preview for the given cart and requested
// delivery/payment choice, without touching any state.
func (s *Service) Quote(ctx context.Context, crt *cart.Cart, deliveryMethod, paymentMethod string) (*Quote, error) {
	lines, itemsTotal, totalQty, err := s.PriceCart(ctx, crt)
	if err != nil {
		return nil, err
	}
	fulfillment := ResolveFulfillment(deliveryMethod, paymentMethod, s.deliveryFee)
	return &Quote{
		Lines:         lines,
		ItemsTotal:    itemsTotal,
		TotalQuantity: totalQty,
		Fulfillment:   fulfillment,
		GrandTotal:    itemsTotal.Add(fulfillment.DeliveryFee),
	}, nil
}

// Checkout commits the cart for a customer. It creates the order, its line
// items with price snapshots, and decrements stock, all in one transaction;
// any failure leaves catalog and orders untouched. ErrEmptyCart is returned
// when nothing in the cart is orderable.
func (s *Service) Checkout(ctx context.Context, customerID int64, crt *cart.Cart, deliveryMethod, paymentMethod string) (*Receipt, error) {
	fulfillment := ResolveFulfillment(deliveryMethod, paymentMethod, s.deliveryFee)

	products, err := s.activeProducts(ctx, crt.ProductIDs())
	if err != nil {
		return nil, err
	}
	lines := BuildLines(crt.Items(), products)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := domain.Order{
		CustomerID:     &customerID,
		Status:         domain.OrderPending,
		DeliveryMethod: fulfillment.DeliveryMethod,
		PaymentMethod:  fulfillment.PaymentMethod,
		DeliveryFee:    fulfillment.DeliveryFee,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return errors.Wrap(err, "create order")
		}
		for _, line := range lines {
			item := domain.OrderItem{
				OrderID:   order.ID,
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				Price:     line.Product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return errors.Wrap(err, "create order item")
			}

			newStock := line.Product.StockQuantity - line.Quantity
			if newStock < 0 {
				newStock = 0
			}
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", line.Product.ID).
				Update("stock_quantity", newStock).Error; err != nil {
				return errors.Wrap(err, "decrement stock")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	itemsTotal := decimal.Zero
	for _, line := range lines {
		itemsTotal = itemsTotal.Add(line.Subtotal())
	}

	zap.L().Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customerID),
		zap.Int("lines", len(lines)),
		zap.String("delivery_method", fulfillment.DeliveryMethod),
		zap.String("payment_method", fulfillment.PaymentMethod))

	return &Receipt{
		OrderID:     order.ID,
		Fulfillment: fulfillment,
		Lines:       lines,
		ItemsTotal:  itemsTotal,
		GrandTotal:  itemsTotal.Add(fulfillment.DeliveryFee),
	}, nil
}
