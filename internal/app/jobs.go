package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/greenbasket/greenbasket/internal/domain"
)

// initJob starts the background scheduler.
func (a *Application) initJob() {
	a.sched = cron.New()

	// prune operation logs older than a year
	_, err := a.sched.AddFunc("@daily", func() {
		cutoff := time.Now().AddDate(-1, 0, 0)
		result := a.gormDB.Where("opt_time < ?", cutoff).Delete(&domain.SysOprLog{})
		if result.Error != nil {
			zap.S().Errorf("prune operation logs: %v", result.Error)
			return
		}
		if result.RowsAffected > 0 {
			zap.S().Infof("pruned %d operation log rows", result.RowsAffected)
		}
	})
	if err != nil {
		zap.S().Errorf("schedule log pruning: %v", err)
	}

	// low-stock watchdog
	_, err = a.sched.AddFunc("@hourly", func() {
		threshold := a.LowStockThreshold()
		var count int64
		err := a.gormDB.Model(&domain.Product{}).
			Where("is_active = ? and stock_quantity <= ?", true, threshold).
			Count(&count).Error
		if err != nil {
			zap.S().Errorf("low stock scan: %v", err)
			return
		}
		if count > 0 {
			zap.S().Warnf("%d active products at or below stock threshold %d", count, threshold)
		}
	})
	if err != nil {
		zap.S().Errorf("schedule low stock scan: %v", err)
	}

	a.sched.Start()
}
