package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

func (h *Handler) dashboard(c echo.Context) error {
	userID, _ := webserver.CurrentUserID(c)

	stats, err := h.reports.CustomerStats(c.Request().Context(), userID)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard", nil)
	}
	return webserver.OK(c, stats)
}

func (h *Handler) orders(c echo.Context) error {
	userID, _ := webserver.CurrentUserID(c)
	ctx := c.Request().Context()

	filter := reporting.OrderFilter{CustomerID: userID}
	statusFilter := c.QueryParam("status")
	if statusFilter != "" && statusFilter != "all" {
		status, err := domain.ParseOrderStatus(statusFilter)
		if err != nil {
			return webserver.Fail(c, http.StatusBadRequest, "INVALID_STATUS", "Invalid status filter", nil)
		}
		filter.Status = status
	}

	orders, err := h.reports.ListOrders(ctx, filter)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load orders", nil)
	}

	active, err := h.reports.ListOrders(ctx, reporting.OrderFilter{
		CustomerID: userID,
		Statuses:   domain.ActiveOrderStatuses,
	})
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load orders", nil)
	}

	return webserver.OK(c, map[string]interface{}{
		"orders":        orders,
		"active_orders": active,
		"status_filter": statusFilter,
	})
}
