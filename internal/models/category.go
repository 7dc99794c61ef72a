package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 博客分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 主键
	Name      string         `gorm:"index;not null" json:"name"`                 // 分类名称
	Image     string         `gorm:"type:varchar(500)" json:"image"`             // 分类图片（存储 URL）
	Status    string         `gorm:"index;default:'active'" json:"status"`       // 状态（active/inactive）
	Featured  bool           `gorm:"not null;default:false" json:"featured"`     // 是否推荐
	Popular   bool           `gorm:"not null;default:false" json:"popular"`      // 是否热门
	SortOrder int            `gorm:"not null;default:0;index" json:"sort_order"` // 排序权重
	UsedCount int            `gorm:"not null;default:0;index" json:"used_count"` // 引用计数（被多少篇博客使用，下限 0）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
