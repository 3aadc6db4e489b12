package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category values used by the storefront filters. Category itself is free
// text so staff can introduce new sections without a migration.
const (
	CategoryFruits     = "Fruits"
	CategoryVegetables = "Vegetables"
)

// Product is a catalog entry. Price is per kilogram; StockQuantity is the
// number of whole kilogram units available.
type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"size:200;index" json:"name" form:"name"`
	Category      string          `gorm:"size:100;index" json:"category" form:"category"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2)" json:"price" form:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity" form:"stock_quantity"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active" form:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether the product can currently be sold.
func (p *Product) InStock() bool {
	return p.IsActive && p.StockQuantity > 0
}
