package models

import (
	"strings"

	"github.com/bloomcart/internal/logger"
)

// InitDefaultAdmin 确保配置指定的身份提供方账号拥有管理员角色
//
// 认证完全委托给外部身份提供方，本地不存任何凭据；
// 这里只把配置里的 provider uid 对应的镜像账号提升为 admin，
// 账号尚未注册时先建一条占位档案，注册时再补全 claims。
func InitDefaultAdmin(providerUID, email string) error {
	providerUID = strings.TrimSpace(providerUID)
	if providerUID == "" {
		return nil
	}

	var existing User
	err := DB.Where("provider_uid = ?", providerUID).First(&existing).Error
	if err == nil {
		if existing.Role == "admin" {
			return nil
		}
		if err := DB.Model(&existing).Update("role", "admin").Error; err != nil {
			return err
		}
		logger.Infow("default_admin_promoted", "provider_uid", providerUID)
		return nil
	}

	admin := User{
		ProviderUID: providerUID,
		Email:       email,
		Role:        "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}
	logger.Infow("default_admin_created", "provider_uid", providerUID)
	return nil
}
