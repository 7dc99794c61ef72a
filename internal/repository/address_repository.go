package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	GetByID(id uint) (*models.Address, error)
	GetByIDForUser(id, userID uint) (*models.Address, error)
	ListByUser(userID uint, page, pageSize int) ([]models.Address, int64, error)
	LatestByUser(userID uint) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id uint) error
	UnsetDefaultForUser(userID uint) error
	SetDefault(id uint) error
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// GetByID 根据ID获取地址
func (r *GormAddressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// GetByIDForUser 根据ID获取指定用户的地址
func (r *GormAddressRepository) GetByIDForUser(id, userID uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// ListByUser 获取用户地址列表（默认地址在前，其余按创建时间倒序）
func (r *GormAddressRepository) ListByUser(userID uint, page, pageSize int) ([]models.Address, int64, error) {
	var addresses []models.Address
	query := r.db.Model(&models.Address{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPagination(query.Order("is_default DESC, created_at DESC"), page, pageSize).
		Find(&addresses).Error
	if err != nil {
		return nil, 0, err
	}
	return addresses, total, nil
}

// LatestByUser 获取用户最新创建的地址
func (r *GormAddressRepository) LatestByUser(userID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// Create 创建地址
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// Update 更新地址
func (r *GormAddressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

// Delete 删除地址
func (r *GormAddressRepository) Delete(id uint) error {
	return r.db.Delete(&models.Address{}, id).Error
}

// UnsetDefaultForUser 取消用户全部默认地址标记
func (r *GormAddressRepository) UnsetDefaultForUser(userID uint) error {
	return r.db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		UpdateColumn("is_default", false).Error
}

// SetDefault 设置默认地址标记
func (r *GormAddressRepository) SetDefault(id uint) error {
	return r.db.Model(&models.Address{}).Where("id = ?", id).UpdateColumn("is_default", true).Error
}
