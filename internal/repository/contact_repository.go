package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 联系留言数据访问接口
type ContactRepository interface {
	GetByID(id uint) (*models.Contact, error)
	Create(contact *models.Contact) error
	MarkDeleted(id uint) error
	List(filter ContactListFilter) ([]models.Contact, int64, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建联系留言仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// GetByID 根据ID获取留言
func (r *GormContactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

// Create 创建留言
func (r *GormContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// MarkDeleted 软删除留言
func (r *GormContactRepository) MarkDeleted(id uint) error {
	return r.db.Model(&models.Contact{}).Where("id = ?", id).Update("is_deleted", true).Error
}

// List 获取留言列表
func (r *GormContactRepository) List(filter ContactListFilter) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	query := r.db.Model(&models.Contact{}).Where("is_deleted = ?", false)

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "full_name", "email")
		query = query.Where(cond, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize).Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}
