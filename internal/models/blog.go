package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog 博客文章表
type Blog struct {
	ID            uint           `gorm:"primarykey" json:"id"`                           // 主键
	Title         string         `gorm:"index;not null" json:"title"`                    // 标题
	Description   string         `gorm:"type:text;not null" json:"description"`          // 摘要
	Content       string         `gorm:"type:text;not null" json:"content,omitempty"`    // 正文
	Thumbnail     string         `gorm:"type:varchar(500)" json:"thumbnail"`             // 缩略图（存储 URL）
	VideoLink     string         `gorm:"type:varchar(500)" json:"video_link,omitempty"`  // 视频链接
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`               // 唯一标识（由标题生成）
	AuthorID      uint           `gorm:"index;not null" json:"author_id"`                // 作者ID
	Status        string         `gorm:"index;default:'draft'" json:"status"`            // 状态（draft/published/archived）
	Featured      bool           `gorm:"not null;default:false" json:"featured"`         // 是否推荐
	Popular       bool           `gorm:"not null;default:false" json:"popular"`          // 是否热门
	FavoriteCount int            `gorm:"not null;default:0" json:"favorite_count"`       // 收藏数
	Views         int            `gorm:"not null;default:0;index" json:"views"`          // 浏览数
	SortOrder     int            `gorm:"not null;default:0;index" json:"sort_order"`     // 排序权重
	PublishedAt   *time.Time     `gorm:"index" json:"published_at"`                      // 首次发布时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	Author     *Author    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`          // 作者
	Categories []Category `gorm:"many2many:blog_categories" json:"categories,omitempty"` // 分类
	Topics     []Topic    `gorm:"many2many:blog_topics" json:"topics,omitempty"`        // 话题
}

// TableName 指定表名
func (Blog) TableName() string {
	return "blogs"
}
