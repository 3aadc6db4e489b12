package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/webserver"
)

func (h *Handler) listCustomers(c echo.Context) error {
	customers, err := h.reports.ListCustomers(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query customers", nil)
	}
	return webserver.OK(c, customers)
}
