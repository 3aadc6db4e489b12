package shopapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/cart"
	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

type cartUpdatePayload struct {
	// Quantities maps product id to the new kilogram quantity, both as
	// strings; parsing happens at the cart boundary.
	Quantities map[string]string `json:"quantities" form:"quantities"`
}

func (h *Handler) viewCart(c echo.Context) error {
	crt := cart.Load(c)

	lines, itemsTotal, totalQty, err := h.checkout.PriceCart(c.Request().Context(), crt)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load cart", nil)
	}

	return webserver.OK(c, map[string]interface{}{
		"items":          lines,
		"cart_total":     itemsTotal,
		"total_quantity": totalQty,
	})
}

func (h *Handler) addToCart(c echo.Context) error {
	productID, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var product domain.Product
	err = h.db.WithContext(c.Request().Context()).
		Where("id = ? AND is_active = ? AND stock_quantity > ?", productID, true, 0).
		First(&product).Error
	if err != nil {
		return webserver.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not available", nil)
	}

	crt := cart.Load(c)
	crt.Add(product.ID)
	if err := cart.Store(c, crt); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to save cart", nil)
	}

	return webserver.OKMessage(c, fmt.Sprintf("Added %s to your cart.", product.Name), map[string]interface{}{
		"product_id": product.ID,
		"quantity":   crt.Quantity(product.ID),
	})
}

// updateCart replaces cart quantities from the submitted form. Lines absent
// from the payload are dropped; unparseable quantities keep the previous
// value; non-positive quantities remove the line. Per-entry problems are not
// surfaced, only the save outcome is.
func (h *Handler) updateCart(c echo.Context) error {
	var payload cartUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart update", nil)
	}

	crt := cart.Load(c)
	updated := cart.New()
	for _, item := range crt.Items() {
		raw, submitted := payload.Quantities[fmt.Sprintf("%d", item.ProductID)]
		if !submitted {
			continue
		}
		qty, err := cart.ParseQuantity(raw)
		if err != nil {
			qty = item.Quantity
		}
		updated.Set(item.ProductID, qty)
	}

	if err := cart.Store(c, updated); err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to save cart", nil)
	}
	return webserver.OKMessage(c, "Your cart has been updated.", nil)
}

func (h *Handler) removeFromCart(c echo.Context) error {
	productID, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	crt := cart.Load(c)
	removed := crt.Remove(productID)
	if removed {
		if err := cart.Store(c, crt); err != nil {
			return webserver.Fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to save cart", nil)
		}
		return webserver.OKMessage(c, "Item removed from your cart.", nil)
	}
	return webserver.OK(c, nil)
}
