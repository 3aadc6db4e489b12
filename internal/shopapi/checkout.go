package shopapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/greenbasket/greenbasket/internal/cart"
	"github.com/greenbasket/greenbasket/internal/checkout"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

type checkoutPayload struct {
	DeliveryMethod string `json:"delivery_method" form:"delivery_method" query:"delivery_method"`
	PaymentMethod  string `json:"payment_method" form:"payment_method" query:"payment_method"`
}

func (h *Handler) previewCheckout(c echo.Context) error {
	crt := cart.Load(c)
	if crt.Empty() {
		return webserver.Fail(c, http.StatusBadRequest, "CART_EMPTY", "Your cart is empty.", nil)
	}

	var payload checkoutPayload
	_ = c.Bind(&payload)

	quote, err := h.checkout.Quote(c.Request().Context(), crt, payload.DeliveryMethod, payload.PaymentMethod)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build checkout preview", nil)
	}
	return webserver.OK(c, quote)
}

func (h *Handler) commitCheckout(c echo.Context) error {
	userID, _ := webserver.CurrentUserID(c)

	crt := cart.Load(c)
	if crt.Empty() {
		return webserver.Fail(c, http.StatusBadRequest, "CART_EMPTY", "Your cart is empty.", nil)
	}

	var payload checkoutPayload
	_ = c.Bind(&payload)

	receipt, err := h.checkout.Checkout(c.Request().Context(), userID, crt, payload.DeliveryMethod, payload.PaymentMethod)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		if err := cart.Clear(c); err != nil {
			zap.L().Warn("failed to reset cart", zap.Error(err))
		}
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_CART",
			"Unable to place your order. Please check product availability or quantities.", nil)
	case err != nil:
		zap.L().Error("checkout failed", zap.Int64("customer_id", userID), zap.Error(err))
		return webserver.Fail(c, http.StatusInternalServerError, "CHECKOUT_FAILED",
			"Something went wrong placing your order. Please try again.", nil)
	}

	if err := cart.Clear(c); err != nil {
		zap.L().Warn("failed to clear cart after checkout", zap.Int64("order_id", receipt.OrderID), zap.Error(err))
	}

	message := fmt.Sprintf("Your order #%d has been placed successfully. Delivery: %s. Payment: %s.",
		receipt.OrderID,
		receipt.Fulfillment.DeliveryDisplay(),
		receipt.Fulfillment.PaymentDisplay())
	return webserver.OKMessage(c, message, receipt)
}
