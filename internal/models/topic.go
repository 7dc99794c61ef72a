package models

import (
	"time"

	"gorm.io/gorm"
)

// Topic 博客话题表
type Topic struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // 主键
	Name      string         `gorm:"index;not null" json:"name"`                 // 话题名称
	Status    string         `gorm:"index;default:'active'" json:"status"`       // 状态（active/inactive）
	Featured  bool           `gorm:"not null;default:false" json:"featured"`     // 是否推荐
	Popular   bool           `gorm:"not null;default:false" json:"popular"`      // 是否热门
	SortOrder int            `gorm:"not null;default:0;index" json:"sort_order"` // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                 // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // 软删除时间

	Categories []Category `gorm:"many2many:topic_categories" json:"categories,omitempty"` // 所属分类
}

// TableName 指定表名
func (Topic) TableName() string {
	return "topics"
}
