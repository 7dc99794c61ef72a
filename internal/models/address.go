package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`                     // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`            // 用户ID
	Line      string         `gorm:"type:varchar(500);not null" json:"line"`   // 详细地址
	Zipcode   string         `gorm:"type:varchar(20);not null" json:"zipcode"` // 邮编
	City      string         `gorm:"type:varchar(100);not null" json:"city"`   // 城市
	State     string         `gorm:"type:varchar(100);not null" json:"state"`  // 省/州
	Label     string         `gorm:"default:'Other'" json:"label"`             // 地址标签（Home/Work/Other）
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"` // 是否默认地址（每个用户至多一个）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                           // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
