package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByProviderUID(uid string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	MarkDeleted(id uint) error
	SetBlocked(id uint, blocked bool) error
	List(filter UserListFilter) ([]models.User, int64, error)
	CountActive() (int64, error)
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID 根据ID获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByProviderUID 根据身份提供方 subject id 获取用户
func (r *GormUserRepository) GetByProviderUID(uid string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("provider_uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// MarkDeleted 标记用户注销
func (r *GormUserRepository) MarkDeleted(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_deleted", true).Error
}

// SetBlocked 设置用户封禁状态
func (r *GormUserRepository) SetBlocked(id uint, blocked bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_blocked", blocked).Error
}

// List 获取用户列表（管理端），不含已注销账号
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{}).Where("is_deleted = ?", false)

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "full_name", "email")
		query = query.Where(cond, args...)
	}
	if filter.Blocked != nil {
		query = query.Where("is_blocked = ?", *filter.Blocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CountActive 统计未注销用户数
func (r *GormUserRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}
