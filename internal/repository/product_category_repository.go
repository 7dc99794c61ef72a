package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// ProductCategoryRepository 商品分类数据访问接口
type ProductCategoryRepository interface {
	GetByID(id uint) (*models.ProductCategory, error)
	ListByIDs(ids []uint) ([]models.ProductCategory, error)
	Create(category *models.ProductCategory) error
	Update(category *models.ProductCategory) error
	Delete(id uint) error
	List(filter ProductCategoryListFilter) ([]models.ProductCategory, int64, error)
	CountProducts(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormProductCategoryRepository
}

// GormProductCategoryRepository GORM 实现
type GormProductCategoryRepository struct {
	db *gorm.DB
}

// NewProductCategoryRepository 创建商品分类仓库
func NewProductCategoryRepository(db *gorm.DB) *GormProductCategoryRepository {
	return &GormProductCategoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductCategoryRepository) WithTx(tx *gorm.DB) *GormProductCategoryRepository {
	if tx == nil {
		return r
	}
	return &GormProductCategoryRepository{db: tx}
}

// GetByID 根据ID获取商品分类
func (r *GormProductCategoryRepository) GetByID(id uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListByIDs 批量获取商品分类
func (r *GormProductCategoryRepository) ListByIDs(ids []uint) ([]models.ProductCategory, error) {
	if len(ids) == 0 {
		return []models.ProductCategory{}, nil
	}
	var categories []models.ProductCategory
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create 创建商品分类
func (r *GormProductCategoryRepository) Create(category *models.ProductCategory) error {
	return r.db.Create(category).Error
}

// Update 更新商品分类
func (r *GormProductCategoryRepository) Update(category *models.ProductCategory) error {
	return r.db.Save(category).Error
}

// Delete 删除商品分类
func (r *GormProductCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductCategory{}, id).Error
}

// List 获取商品分类列表
func (r *GormProductCategoryRepository) List(filter ProductCategoryListFilter) ([]models.ProductCategory, int64, error) {
	var categories []models.ProductCategory
	query := r.db.Model(&models.ProductCategory{})

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
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// CountProducts 统计分类下关联的商品数
func (r *GormProductCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Table("product_category_links").Where("product_category_id = ?", categoryID).Count(&count).Error
	return count, err
}
