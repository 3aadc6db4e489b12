package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenbasket/greenbasket/internal/domain"
	"github.com/greenbasket/greenbasket/internal/webserver"
)

func (h *Handler) listProducts(c echo.Context) error {
	page, perPage := webserver.ParsePagination(c, shopPageSize)

	db := h.db.WithContext(c.Request().Context()).
		Model(&domain.Product{}).
		Where("is_active = ? AND stock_quantity > ?", true, 0).
		Scopes(
			domain.ProductNameSearch(c.QueryParam("q")),
			domain.ProductCategory(c.QueryParam("category")),
		)

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
