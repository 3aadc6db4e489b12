package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

const topProductsLimit = 5

func (h *Handler) dashboard(c echo.Context) error {
	stats, err := h.reports.Dashboard(c.Request().Context(), time.Now())
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load dashboard", nil)
	}
	return webserver.OK(c, stats)
}

func (h *Handler) salesReport(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now()

	daily, err := h.reports.SalesTotal(ctx, reporting.Today(now))
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build report", nil)
	}
	weekly, err := h.reports.SalesTotal(ctx, reporting.TrailingDays(now, 7))
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build report", nil)
	}
	monthly, err := h.reports.SalesTotal(ctx, reporting.MonthToDate(now))
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build report", nil)
	}

	window := reporting.ResolveWindow(c.QueryParam("start"), c.QueryParam("end"), now)
	topProducts, err := h.reports.TopProducts(ctx, window, topProductsLimit)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build report", nil)
	}

	return webserver.OK(c, map[string]interface{}{
		"daily_sales":   daily,
		"weekly_sales":  weekly,
		"monthly_sales": monthly,
		"top_products":  topProducts,
		"period_label":  window.Label,
		"report_start":  c.QueryParam("start"),
		"report_end":    c.QueryParam("end"),
	})
}

// exportReport downloads the top-product rows for the selected window as CSV.
func (h *Handler) exportReport(c echo.Context) error {
	now := time.Now()
	window := reporting.ResolveWindow(c.QueryParam("start"), c.QueryParam("end"), now)

	rows, err := h.reports.TopProducts(c.Request().Context(), window, topProductsLimit)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build report", nil)
	}

	h.logAction(c, "report_export", fmt.Sprintf("exported sales report %s", window.Label))

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "sales-report.csv"))
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}
