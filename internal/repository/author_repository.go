package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// AuthorRepository 作者数据访问接口
type AuthorRepository interface {
	GetByID(id uint) (*models.Author, error)
	Create(author *models.Author) error
	Update(author *models.Author) error
	Delete(id uint) error
	List(filter AuthorListFilter) ([]models.Author, int64, error)
	WithTx(tx *gorm.DB) *GormAuthorRepository
}

// GormAuthorRepository GORM 实现
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓库
func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAuthorRepository) WithTx(tx *gorm.DB) *GormAuthorRepository {
	if tx == nil {
		return r
	}
	return &GormAuthorRepository{db: tx}
}

// GetByID 根据ID获取作者
func (r *GormAuthorRepository) GetByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

// Create 创建作者
func (r *GormAuthorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

// Update 更新作者
func (r *GormAuthorRepository) Update(author *models.Author) error {
	return r.db.Save(author).Error
}

// Delete 删除作者
func (r *GormAuthorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Author{}, id).Error
}

// List 获取作者列表
func (r *GormAuthorRepository) List(filter AuthorListFilter) ([]models.Author, int64, error) {
	var authors []models.Author
	query := r.db.Model(&models.Author{})

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "name")
		query = query.Where(cond, args...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPagination(query.Order("sort_order ASC, created_at DESC"), filter.Page, filter.PageSize).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}
