package domain

import (
	"time"
)

// User levels.
const (
	LevelAdmin    = "admin"
	LevelCustomer = "customer"
)

type SysUser struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex" json:"username" form:"username"`
	Email     string    `gorm:"size:254;index" json:"email" form:"email"`
	FirstName string    `gorm:"size:150" json:"first_name" form:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name" form:"last_name"`
	Password  string    `gorm:"size:128" json:"-" form:"-"`
	Level     string    `gorm:"size:20;index;default:customer" json:"level"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysUser) TableName() string {
	return "sys_user"
}

// IsAdmin reports whether the user may reach the staff surface.
func (u *SysUser) IsAdmin() bool {
	return u.Level == LevelAdmin
}

// DisplayName is the name shown on staff screens.
func (u *SysUser) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// SysOprLog records a staff action for audit purposes.
type SysOprLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	OprName   string    `json:"opr_name"`
	OprIp     string    `json:"opr_ip"`
	OptAction string    `json:"opt_action"`
	OptDesc   string    `json:"opt_desc"`
	OptTime   time.Time `json:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}

// SysConfig is a settings row. Type groups related settings, Name is the key
// within the group.
type SysConfig struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}
