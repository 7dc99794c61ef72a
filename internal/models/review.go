package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评价表（每个用户对每个商品至多一条）
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                           // 主键
	UserID    uint           `gorm:"uniqueIndex:idx_reviews_user_product;not null" json:"user_id"`   // 用户ID
	ProductID uint           `gorm:"uniqueIndex:idx_reviews_user_product;not null" json:"product_id"` // 商品ID
	OrderID   uint           `gorm:"index;not null" json:"order_id"`                                 // 履约订单ID（须为该用户已送达订单）
	Rating    int            `gorm:"not null" json:"rating"`                                         // 评分（1-5）
	Message   string         `gorm:"type:text;not null" json:"message"`                              // 评价内容（至少 10 字符）
	Status    string         `gorm:"index;default:'active'" json:"status"`                           // 状态（active/hidden）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                     // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 用户
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
