package app

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/domain"
)

// checkAdminUser provisions the staff account on startup. Missing credentials
// skip the step; an existing row is repaired to match the configured identity.
func (a *Application) checkAdminUser() {
	ac := a.appConfig.Admin
	if ac.Username == "" || ac.Password == "" {
		zap.S().Warn("admin credentials not configured, skipping admin provisioning")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(ac.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.S().Errorf("hash admin password: %v", err)
		return
	}

	var user domain.SysUser
	err = a.gormDB.Where("username = ?", ac.Username).First(&user).Error
	switch err {
	case gorm.ErrRecordNotFound:
		user = domain.SysUser{
			Username: ac.Username,
			Email:    ac.Email,
			Password: string(hashed),
			Level:    domain.LevelAdmin,
		}
		if err := a.gormDB.Create(&user).Error; err != nil {
			zap.S().Errorf("create admin user: %v", err)
			return
		}
		zap.S().Infof("created admin user %s", ac.Username)
	case nil:
		err = a.gormDB.Model(&user).Updates(map[string]interface{}{
			"email":    ac.Email,
			"password": string(hashed),
			"level":    domain.LevelAdmin,
		}).Error
		if err != nil {
			zap.S().Errorf("update admin user: %v", err)
			return
		}
		zap.S().Infof("refreshed admin user %s", ac.Username)
	default:
		zap.S().Errorf("query admin user: %v", err)
	}
}

// checkSettings seeds the default settings rows, keeping existing values.
func (a *Application) checkSettings() {
	defaults := []domain.SysConfig{
		{Sort: 1, Type: SettingsCheckout, Name: "DeliveryFee", Value: "20", Remark: "Flat delivery fee applied to delivered orders"},
		{Sort: 2, Type: SettingsCatalog, Name: "LowStockThreshold", Value: "10", Remark: "Stock level at or below which a product needs attention"},
	}
	for _, item := range defaults {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", item.Type, item.Name).
			Count(&count)
		if count == 0 {
			if err := a.gormDB.Create(&item).Error; err != nil {
				zap.S().Errorf("seed setting %s/%s: %v", item.Type, item.Name, err)
			}
		}
	}
}
