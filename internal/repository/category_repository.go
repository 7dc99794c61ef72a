package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 博客分类数据访问接口
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	ListByIDs(ids []uint) ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	List(filter CategoryListFilter) ([]models.Category, int64, error)
	IncrementUsedCount(ids []uint) error
	DecrementUsedCount(ids []uint) error
	WithTx(tx *gorm.DB) *GormCategoryRepository
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建博客分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) *GormCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormCategoryRepository{db: tx}
}

// GetByID 根据ID获取分类
func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListByIDs 批量获取分类
func (r *GormCategoryRepository) ListByIDs(ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var categories []models.Category
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建分类
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update 更新分类
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// List 获取分类列表
func (r *GormCategoryRepository) List(filter CategoryListFilter) ([]models.Category, int64, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "name")
		query = query.Where(cond, args...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.PopularOnly {
		query = query.Where("popular = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "sort_order ASC, created_at DESC"
	}
	err := applyPagination(query.Order(orderBy), filter.Page, filter.PageSize).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// IncrementUsedCount 批量增加引用计数
func (r *GormCategoryRepository) IncrementUsedCount(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Category{}).
		Where("id IN ?", ids).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

// DecrementUsedCount 批量减少引用计数，下限为 0
func (r *GormCategoryRepository) DecrementUsedCount(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Category{}).
		Where("id IN ? AND used_count > 0", ids).
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}
