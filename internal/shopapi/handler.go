// Package shopapi is the customer surface: registration and login, the
// storefront listing, the session cart, checkout, and the customer's own
// dashboard and order history.
package shopapi

import (
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/checkout"
	"github.com/greenbasket/greenbasket/internal/reporting"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

// Products per storefront page.
const shopPageSize = 9

type Handler struct {
	db       *gorm.DB
	checkout *checkout.Service
	reports  *reporting.Service
}

// Register mounts the customer routes.
func Register(srv *webserver.Server, co *checkout.Service, rpt *reporting.Service) *Handler {
	h := &Handler{db: srv.DB(), checkout: co, reports: rpt}

	e := srv.Echo()
	e.GET("/", h.home)
	e.GET(webserver.LoginPath, h.loginPrompt)
	e.POST(webserver.LoginPath, h.login)
	e.POST("/register", h.register)
	e.GET("/logout", h.logout)
	e.POST("/logout", h.logout)

	g := e.Group("/api/shop", webserver.RequireCustomer)
	g.GET("/dashboard", h.dashboard)
	g.GET("/orders", h.orders)
	g.GET("/products", h.listProducts)
	g.GET("/cart", h.viewCart)
	g.POST("/cart/add/:id", h.addToCart)
	g.POST("/cart", h.updateCart)
	g.POST("/cart/remove/:id", h.removeFromCart)
	g.GET("/checkout", h.previewCheckout)
	g.POST("/checkout", h.commitCheckout)

	return h
}
