// Package adminapi is the staff surface: dashboard, product management,
// order workflow, customer overview, and sales reports.
package adminapi

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

// Products per admin listing page.
const adminPageSize = 9

type Handler struct {
	db      *gorm.DB
	reports *reporting.Service
}

// Register mounts the staff routes.
func Register(srv *webserver.Server, rpt *reporting.Service) *Handler {
	h := &Handler{db: srv.DB(), reports: rpt}

	g := srv.Echo().Group("/api/admin", webserver.RequireAdmin)
	g.GET("/dashboard", h.dashboard)

	g.GET("/products", h.listProducts)
	g.GET("/products/:id", h.getProduct)
	g.POST("/products", h.createProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.PUT("/products/:id/stock", h.updateProductStock)
	g.POST("/products/:id/toggle", h.toggleProduct)
	g.DELETE("/products/:id", h.deleteProduct)

	g.GET("/orders", h.listOrders)
	g.PUT("/orders/:id/status", h.updateOrderStatus)

	g.GET("/customers", h.listCustomers)

	g.GET("/reports", h.salesReport)
	g.GET("/reports/export", h.exportReport)

	return h
}

// logAction appends a staff action to the audit trail. Audit failures are
// logged, never surfaced to the actor.
func (h *Handler) logAction(c echo.Context, action, desc string) {
	oprName := ""
	if user, err := webserver.CurrentUser(c, h.db); err == nil {
		oprName = user.Username
	}
	entry := domain.SysOprLog{
		OprName:   oprName,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := h.db.Create(&entry).Error; err != nil {
		zap.L().Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
