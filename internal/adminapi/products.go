package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

type productPayload struct {
	Name          string          `json:"name" form:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" form:"category" validate:"omitempty,max=100"`
	Price         decimal.Decimal `json:"price" form:"price"`
	StockQuantity int             `json:"stock_quantity" form:"stock_quantity" validate:"min=0"`
	IsActive      *bool           `json:"is_active" form:"is_active"`
}

type stockPayload struct {
	StockQuantity int `json:"stock_quantity" form:"stock_quantity" validate:"min=0"`
}

func (h *Handler) listProducts(c echo.Context) error {
	page, perPage := webserver.ParsePagination(c, adminPageSize)

	db := h.db.WithContext(c.Request().Context()).
		Model(&domain.Product{}).
		Scopes(
			domain.ProductNameSearch(c.QueryParam("q")),
			domain.ProductCategory(c.QueryParam("category")),
		)

	lowStock := h.reports.LowStockThreshold()
	switch c.QueryParam("status") {
	case "available":
		db = db.Where("is_active = ? AND stock_quantity > ?", true, 0)
	case "low_stock":
		db = db.Where("is_active = ? AND stock_quantity > ? AND stock_quantity <= ?", true, 0, lowStock)
	case "unavailable":
		db = db.Where("is_active = ? OR stock_quantity <= ?", false, 0)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	var products []domain.Product
	if err := db.Order("category ASC, name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	return webserver.Paged(c, products, total, page, perPage)
}

func (h *Handler) getProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var product domain.Product
	if err := h.db.WithContext(c.Request().Context()).First(&product, id).Error; err != nil {
		return webserver.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	return webserver.OK(c, product)
}

func (h *Handler) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}
	if payload.Price.Sign() < 0 {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	product := domain.Product{
		Name:          strings.TrimSpace(payload.Name),
		Category:      strings.TrimSpace(payload.Category),
		Price:         payload.Price,
		StockQuantity: payload.StockQuantity,
		IsActive:      true,
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}

	if err := h.db.WithContext(c.Request().Context()).Create(&product).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}

	h.logAction(c, "product_create", fmt.Sprintf("created product %q (id %d)", product.Name, product.ID))
	return webserver.OKMessage(c, "Product added successfully.", product)
}

func (h *Handler) updateProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var product domain.Product
	if err := h.db.WithContext(c.Request().Context()).First(&product, id).Error; err != nil {
		return webserver.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}
	if payload.Price.Sign() < 0 {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}

	product.Name = strings.TrimSpace(payload.Name)
	product.Category = strings.TrimSpace(payload.Category)
	product.Price = payload.Price
	product.StockQuantity = payload.StockQuantity
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}

	if err := h.db.WithContext(c.Request().Context()).Save(&product).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}

	h.logAction(c, "product_update", fmt.Sprintf("updated product %q (id %d)", product.Name, product.ID))
	return webserver.OKMessage(c, "Product updated successfully.", product)
}

func (h *Handler) updateProductStock(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var product domain.Product
	if err := h.db.WithContext(c.Request().Context()).First(&product, id).Error; err != nil {
		return webserver.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	var payload stockPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse stock update", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}

	if err := h.db.WithContext(c.Request().Context()).
		Model(&product).
		Update("stock_quantity", payload.StockQuantity).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update stock", nil)
	}

	h.logAction(c, "product_stock", fmt.Sprintf("set stock of product %d to %d", product.ID, payload.StockQuantity))
	return webserver.OKMessage(c, "Stock updated successfully.", product)
}

func (h *Handler) toggleProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var product domain.Product
	if err := h.db.WithContext(c.Request().Context()).First(&product, id).Error; err != nil {
		return webserver.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	product.IsActive = !product.IsActive
	if err := h.db.WithContext(c.Request().Context()).
		Model(&product).
		Update("is_active", product.IsActive).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}

	h.logAction(c, "product_toggle", fmt.Sprintf("set product %d active=%t", product.ID, product.IsActive))
	return webserver.OKMessage(c, "Product availability updated.", product)
}

// deleteProduct removes a catalog entry. Products referenced by order items
// carry historical price snapshots and are protected from deletion; staff
// should deactivate them instead.
func (h *Handler) deleteProduct(c echo.Context) error {
	id, err := webserver.ParseIDParam(c, "id")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	db := h.db.WithContext(c.Request().Context())

	var product domain.Product
	if err := db.First(&product, id).Error; err != nil {
		return webserver.Fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}

	var referenced int64
	if err := db.Model(&domain.OrderItem{}).Where("product_id = ?", id).Count(&referenced).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check product references", nil)
	}
	if referenced > 0 {
		return webserver.Fail(c, http.StatusConflict, "PRODUCT_REFERENCED",
			"Product is referenced by existing orders and cannot be deleted. Deactivate it instead.", nil)
	}

	if err := db.Delete(&product).Error; err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}

	h.logAction(c, "product_delete", fmt.Sprintf("deleted product %q (id %d)", product.Name, product.ID))
	return webserver.OKMessage(c, "Product deleted successfully.", map[string]interface{}{"id": id})
}
