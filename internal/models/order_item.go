package models

import (
	"time"
)

// OrderItem 订单项表（下单时快照所购价格档位，附带当时的档位索引）
type OrderItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID       uint      `gorm:"index;not null" json:"order_id"`                            // 订单ID
	ProductID     uint      `gorm:"index;not null" json:"product_id"`                          // 商品ID
	QuantityIndex int       `gorm:"not null" json:"quantity_index"`                            // 规格档位索引（下单时）
	PackageIndex  int       `gorm:"not null" json:"package_index"`                             // 价格档位索引（下单时）
	Quantity      int       `gorm:"not null" json:"quantity"`                                  // 购买数量
	UnitPrice     Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"`             // 成交单价
	TotalPrice    Money     `gorm:"type:decimal(20,2);not null" json:"total_price"`            // 行小计
	PackageName   string    `gorm:"type:varchar(200)" json:"package_name"`                     // 快照：档位名称
	QuantityLabel string    `gorm:"type:varchar(100)" json:"quantity_label"`                   // 快照：数量标签
	BasePrice     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`   // 快照：原价
	DiscountType  string    `gorm:"type:varchar(20)" json:"discount_type,omitempty"`           // 快照：折扣类型
	DiscountValue Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"` // 快照：折扣数值
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                   // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// HasSnapshot 判断订单项是否带有下单时的档位快照
func (i *OrderItem) HasSnapshot() bool {
	return i.PackageName != "" || i.QuantityLabel != ""
}
