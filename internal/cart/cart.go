// Package cart holds the per-session shopping cart: a typed mapping of
// product id to a kilogram quantity. Parsing of the loosely typed session
// form happens here and nowhere else.
package cart

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Quantity is in kilograms and may be fractional;
// checkout converts it to whole units.
type Item struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// Cart is the session cart value object. The zero value is not usable; use
// New or Decode.
type Cart struct {
	items map[int64]decimal.Decimal
}

func New() *Cart {
	return &Cart{items: make(map[int64]decimal.Decimal)}
}

// ParseQuantity parses a quantity from its session/form representation.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(raw)
}

// Decode rebuilds a cart from its session-stored form. Entries whose key or
// value fails to parse are dropped silently, matching the tolerance the rest
// of the cart flow promises.
func Decode(raw map[string]string) *Cart {
	c := New()
	for key, value := range raw {
		pid, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		qty, err := ParseQuantity(value)
		if err != nil {
			continue
		}
		if qty.Sign() > 0 {
			c.items[pid] = qty
		}
	}
	return c
}

// Encode renders the cart into the map form stored in the session cookie.
func (c *Cart) Encode() map[string]string {
	raw := make(map[string]string, len(c.items))
	for pid, qty := range c.items {
		raw[strconv.FormatInt(pid, 10)] = qty.String()
	}
	return raw
}

// Add increases the quantity for a product by one kilogram.
func (c *Cart) Add(productID int64) {
	c.items[productID] = c.items[productID].Add(decimal.NewFromInt(1))
}

// Set replaces the quantity for a product. Non-positive quantities remove
// the line.
func (c *Cart) Set(productID int64, qty decimal.Decimal) {
	if qty.Sign() <= 0 {
		delete(c.items, productID)
		return
	}
	c.items[productID] = qty
}

// Remove deletes a product line. Returns whether the line existed.
func (c *Cart) Remove(productID int64) bool {
	_, ok := c.items[productID]
	delete(c.items, productID)
	return ok
}

// Quantity returns the quantity for a product, zero when absent.
func (c *Cart) Quantity(productID int64) decimal.Decimal {
	return c.items[productID]
}

// Items returns the cart lines ordered by product id.
func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.items))
	for pid, qty := range c.items {
		items = append(items, Item{ProductID: pid, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

// ProductIDs returns the distinct product ids in the cart.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.items))
	for pid := range c.items {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len is the number of cart lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// TotalQuantity sums the kilogram quantities over all lines.
func (c *Cart) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, qty := range c.items {
		total = total.Add(qty)
	}
	return total
}
