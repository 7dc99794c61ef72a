package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon 优惠券表
type Coupon struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                             // 优惠码（统一大写）
	DiscountType  string         `gorm:"not null" json:"discount_type"`                                // 折扣类型（percent/flat）
	DiscountValue Money          `gorm:"type:decimal(20,2);not null" json:"discount_value"`            // 折扣数值（百分比或固定金额）
	MaxDiscount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"`    // 最大优惠金额（上限）
	MinOrderValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_value"` // 最低订单金额（门槛）
	UsageCount    int            `gorm:"not null;default:0" json:"usage_count"`                        // 已使用次数（单调递增）
	Status        string         `gorm:"index;default:'active'" json:"status"`                         // 状态（active/inactive）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}
