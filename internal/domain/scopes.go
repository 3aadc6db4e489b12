package domain

import (
	"strings"

	"gorm.io/gorm"
)

// ProductCategory filters a product query by the storefront category
// parameter (all|fruits|vegetables). Unknown values apply no filter.
func ProductCategory(category string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch strings.ToLower(strings.TrimSpace(category)) {
		case "fruits":
			return db.Where("LOWER(category) = ?", strings.ToLower(CategoryFruits))
		case "vegetables":
			return db.Where("LOWER(category) = ?", strings.ToLower(CategoryVegetables))
		default:
			return db
		}
	}
}

// ProductNameSearch applies a case-insensitive name substring match. An
// empty query applies no filter.
func ProductNameSearch(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q = strings.TrimSpace(q)
		if q == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
}
