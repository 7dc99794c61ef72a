package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo          string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID           uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	AddressID        uint           `gorm:"index;not null" json:"address_id"`                            // 收货地址ID
	Subtotal         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`       // 折前金额（各行小计之和）
	CouponCode       string         `gorm:"index" json:"coupon_code,omitempty"`                          // 使用的优惠码
	DiscountAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	TotalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 实付金额
	Status           string         `gorm:"index;not null;default:'pending'" json:"status"`              // 订单状态
	PaymentStatus    string         `gorm:"index;not null;default:'pending'" json:"payment_status"`      // 支付状态（pending/paid/failed/refunded）
	PaymentMethod    string         `gorm:"default:'gateway'" json:"payment_method"`                     // 支付方式
	GatewayOrderID   string         `gorm:"index" json:"gateway_order_id,omitempty"`                     // 网关订单ID
	GatewayPaymentID string         `gorm:"index" json:"gateway_payment_id,omitempty"`                   // 网关支付ID
	GatewaySignature string         `gorm:"type:varchar(200)" json:"-"`                                  // 回调签名
	PaymentDate      *time.Time     `gorm:"index" json:"payment_date"`                                   // 支付时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`     // 订单项
	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"` // 收货地址
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
