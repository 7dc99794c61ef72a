package models

import (
	"time"
)

// Contact 联系我们留言表
type Contact struct {
	ID          uint      `gorm:"primarykey" json:"id"`                    // 主键
	FullName    string    `gorm:"index;not null" json:"full_name"`         // 姓名
	Email       string    `gorm:"not null" json:"email"`                   // 邮箱
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number"`    // 电话
	Message     string    `gorm:"type:text;not null" json:"message"`       // 留言内容
	IsDeleted   bool      `gorm:"not null;default:false" json:"-"`         // 是否已删除（列表默认过滤）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                 // 创建时间
}

// TableName 指定表名
func (Contact) TableName() string {
	return "contacts"
}
