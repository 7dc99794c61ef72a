package models

import (
	"time"
)

// CartItem 购物车条目表（按用户+商品+档位索引唯一）
type CartItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                     // 主键
	UserID        uint      `gorm:"uniqueIndex:idx_cart_user_line;not null" json:"user_id"`   // 用户ID
	ProductID     uint      `gorm:"uniqueIndex:idx_cart_user_line;not null" json:"product_id"` // 商品ID
	QuantityIndex int       `gorm:"uniqueIndex:idx_cart_user_line;not null" json:"quantity_index"` // 规格档位索引
	PackageIndex  int       `gorm:"uniqueIndex:idx_cart_user_line;not null" json:"package_index"`  // 价格档位索引
	Quantity      int       `gorm:"not null" json:"quantity"`                                 // 购买数量
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                               // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
