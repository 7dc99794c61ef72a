package models

import (
	"time"

	"gorm.io/gorm"
)

// Author 博客作者表
type Author struct {
	ID              uint           `gorm:"primarykey" json:"id"`                         // 主键
	Name            string         `gorm:"index;not null" json:"name"`                   // 作者名称
	InstagramHandle string         `gorm:"type:varchar(100)" json:"instagram_handle"`    // Instagram 账号
	Description     string         `gorm:"type:text" json:"description"`                 // 简介
	ProfileImage    string         `gorm:"type:varchar(500)" json:"profile_image"`       // 头像（存储 URL）
	Status          string         `gorm:"index;default:'active'" json:"status"`         // 状态（active/inactive）
	SortOrder       int            `gorm:"not null;default:0;index" json:"sort_order"`   // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Author) TableName() string {
	return "authors"
}
