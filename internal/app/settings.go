package app

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/greenbasket/greenbasket/internal/domain"
)

const (
	SettingsCheckout = "checkout"
	SettingsCatalog  = "catalog"

	DefaultDeliveryFee       = 20
	DefaultLowStockThreshold = 10
)

// SettingsManager reads sys_config rows with a small in-memory cache.
type SettingsManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	return &SettingsManager{db: db, cache: make(map[string]string)}
}

func settingsKey(ctype, name string) string {
	return ctype + "/" + name
}

func (m *SettingsManager) GetString(ctype, name string) string {
	m.mu.RLock()
	if v, ok := m.cache[settingsKey(ctype, name)]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	var row domain.SysConfig
	err := m.db.Where("type = ? and name = ?", ctype, name).First(&row).Error
	if err != nil {
		return ""
	}

	m.mu.Lock()
	m.cache[settingsKey(ctype, name)] = row.Value
	m.mu.Unlock()
	return row.Value
}

func (m *SettingsManager) GetInt(ctype, name string, defval int) int {
	v := m.GetString(ctype, name)
	if v == "" {
		return defval
	}
	return cast.ToInt(v)
}

func (m *SettingsManager) GetBool(ctype, name string, defval bool) bool {
	v := m.GetString(ctype, name)
	if v == "" {
		return defval
	}
	return cast.ToBool(v)
}

func (m *SettingsManager) GetDecimal(ctype, name string, defval decimal.Decimal) decimal.Decimal {
	v := m.GetString(ctype, name)
	if v == "" {
		return defval
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return defval
	}
	return d
}

// Set upserts a settings row and refreshes the cache entry.
func (m *SettingsManager) Set(ctype, name, value string) error {
	var row domain.SysConfig
	err := m.db.Where("type = ? and name = ?", ctype, name).First(&row).Error
	switch err {
	case nil:
		err = m.db.Model(&domain.SysConfig{}).
			Where("id = ?", row.ID).
			Update("value", value).Error
	case gorm.ErrRecordNotFound:
		err = m.db.Create(&domain.SysConfig{Type: ctype, Name: name, Value: value}).Error
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.cache[settingsKey(ctype, name)] = value
	m.mu.Unlock()
	return nil
}
