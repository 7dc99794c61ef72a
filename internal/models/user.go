package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（镜像外部身份提供方的账号档案）
type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`                         // 主键
	ProviderUID    string         `gorm:"uniqueIndex;not null" json:"-"`                // 身份提供方 subject id
	Email          string         `gorm:"index" json:"email"`                           // 邮箱
	PhoneNumber    string         `gorm:"index" json:"phone_number,omitempty"`          // 手机号
	EmailVerified  bool           `gorm:"not null;default:false" json:"email_verified"` // 邮箱是否已验证
	SignInProvider string         `gorm:"type:varchar(50)" json:"sign_in_provider"`     // 登录方式（password/google.com 等）
	FullName       string         `gorm:"default:''" json:"full_name"`                  // 姓名
	Role           string         `gorm:"index;default:'user'" json:"role"`             // 角色（user/admin）
	IsBlocked      bool           `gorm:"not null;default:false" json:"is_blocked"`     // 是否封禁
	IsDeleted      bool           `gorm:"not null;default:false" json:"-"`              // 是否注销（注销账号返回 410）
	LastLoginAt    *time.Time     `json:"last_login_at"`                                // 最后登录时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
