package models

import (
	"time"
)

// Favorite 博客收藏表（用户与博客的唯一关联）
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID    uint      `gorm:"uniqueIndex:idx_favorites_user_blog;not null" json:"user_id"` // 用户ID
	BlogID    uint      `gorm:"uniqueIndex:idx_favorites_user_blog;not null" json:"blog_id"` // 博客ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                   // 创建时间

	Blog *Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"` // 博客
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
