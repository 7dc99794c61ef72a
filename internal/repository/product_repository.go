package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint, withCategories bool) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ReplaceCategories(product *models.Product, categories []models.ProductCategory) error
	UpdateRating(id uint, avg float64, count int) error
	CountActive() (int64, error)
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByID 根据ID获取商品
func (r *GormProductRepository) GetByID(id uint, withCategories bool) (*models.Product, error) {
	var product models.Product
	query := r.db
	if withCategories {
		query = query.Preload("Categories")
	}
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Categories").Save(product).Error
}

// Delete 删除商品（同时清理分类关联）
func (r *GormProductRepository) Delete(id uint) error {
	product := models.Product{ID: id}
	if err := r.db.Model(&product).Association("Categories").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&models.Product{}, id).Error
}

// List 获取商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product
	query := r.db.Model(&models.Product{})

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "name", "description")
		query = query.Where(cond, args...)
	}
	if filter.Status != "" {
		query = query.Where("products.status = ?", filter.Status)
	}
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if filter.PopularOnly {
		query = query.Where("is_popular = ?", true)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Joins("JOIN product_category_links pcl ON pcl.product_id = products.id").
			Where("pcl.product_category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "sort_order ASC, created_at DESC"
	}
	err := applyPagination(query.Preload("Categories").Order(orderBy), filter.Page, filter.PageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ReplaceCategories 重建商品与分类的关联
func (r *GormProductRepository) ReplaceCategories(product *models.Product, categories []models.ProductCategory) error {
	return r.db.Model(product).Association("Categories").Replace(categories)
}

// UpdateRating 覆盖商品评分聚合值
func (r *GormProductRepository) UpdateRating(id uint, avg float64, count int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"rating_avg":   avg,
			"rating_count": count,
		}).Error
}

// CountActive 统计上架中的有效商品数
func (r *GormProductRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("status = ?", "active").Count(&count).Error
	return count, err
}
