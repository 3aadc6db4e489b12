package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

type orderStatusPayload struct {
	Status string `json:"status" form:"status" validate:"required"`
}

func (h *Handler) listOrders(c echo.Context) error {
	filter := reporting.OrderFilter{}
	statusFilter := c.QueryParam("status")
	if statusFilter != "" && statusFilter != "all" {
		status, err := domain.ParseOrderStatus(statusFilter)
		if err != nil {
			return webserver.Fail(c, http.StatusBadRequest, "INVALID_STATUS", "Invalid status filter", nil)
		}
		filter.Status = status
	}

	orders, err := h.reports.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	return webserver.OK(c, map[string]interface{}{
		"orders":        orders,
		"status_filter": statusFilter,
	})
}

// updateOrderStatus moves an order to any of the five workflow states. There
// is no transition graph: staff may set any valid value, including moving
// completed or cancelled orders. Invalid values are rejected and the order is
// left untouched.
func (h *Handler) updateOrderStatus(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	db := h.db.WithContext(c.Request().Context())

	var order domain.Order
	if err := db.First(&order, id).Error; err != nil {
		return webserver.Fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}

	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status update", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}

	status, err := domain.ParseOrderStatus(payload.Status)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_STATUS", "Invalid status selected.", nil)
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", nil)
	}

	h.logAction(c, "order_status", fmt.Sprintf("order %d status set to %s", order.ID, status))
	return webserver.OKMessage(c,
		fmt.Sprintf("Order #%d status updated to %s", order.ID, status.Display()),
		map[string]interface{}{"id": order.ID, "status": status})
}
