package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository 博客收藏数据访问接口
type FavoriteRepository interface {
	Get(userID, blogID uint) (*models.Favorite, error)
	Create(favorite *models.Favorite) error
	Delete(userID, blogID uint) error
	BlogIDsByUser(userID uint) ([]uint, error)
	WithTx(tx *gorm.DB) *GormFavoriteRepository
}

// GormFavoriteRepository GORM 实现
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFavoriteRepository) WithTx(tx *gorm.DB) *GormFavoriteRepository {
	if tx == nil {
		return r
	}
	return &GormFavoriteRepository{db: tx}
}

// Get 获取收藏记录
func (r *GormFavoriteRepository) Get(userID, blogID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

// Create 创建收藏记录
func (r *GormFavoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

// Delete 删除收藏记录
func (r *GormFavoriteRepository) Delete(userID, blogID uint) error {
	return r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).Delete(&models.Favorite{}).Error
}

// BlogIDsByUser 获取用户收藏的博客ID集合
func (r *GormFavoriteRepository) BlogIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID).Pluck("blog_id", &ids).Error
	return ids, err
}
