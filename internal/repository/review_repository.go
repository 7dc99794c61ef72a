package repository

import (
	"errors"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	GetByID(id uint) (*models.Review, error)
	GetByUserAndProduct(userID, productID uint) (*models.Review, error)
	ListActiveByProduct(productID uint) ([]models.Review, error)
	Create(review *models.Review) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	RatingDistribution(productID uint) (map[int]int64, error)
	WithTx(tx *gorm.DB) *GormReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) *GormReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// GetByID 根据ID获取评价
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetByUserAndProduct 获取用户对商品的评价（唯一约束）
func (r *GormReviewRepository) GetByUserAndProduct(userID, productID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListActiveByProduct 获取商品的全部有效评价（用于评分聚合）
func (r *GormReviewRepository) ListActiveByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("product_id = ? AND status = ?", productID, constants.ReviewStatusActive).Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// UpdateStatus 更新评价状态
func (r *GormReviewRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// List 获取评价列表
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review
	query := r.db.Model(&models.Review{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Rating >= 1 && filter.Rating <= 5 {
		query = query.Where("rating = ?", filter.Rating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch filter.Sort {
	case "oldest":
		orderBy = "created_at ASC"
	case "highest_rating":
		orderBy = "rating DESC, created_at DESC"
	case "lowest_rating":
		orderBy = "rating ASC, created_at DESC"
	}
	err := applyPagination(query.Preload("User").Preload("Product").Order(orderBy), filter.Page, filter.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// RatingDistribution 统计商品各评分档的有效评价数（1..5 全量返回）
func (r *GormReviewRepository) RatingDistribution(productID uint) (map[int]int64, error) {
	type row struct {
		Rating int
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, constants.ReviewStatusActive).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	distribution := make(map[int]int64, 5)
	for i := 1; i <= 5; i++ {
		distribution[i] = 0
	}
	for _, item := range rows {
		distribution[item.Rating] = item.Count
	}
	return distribution, nil
}
