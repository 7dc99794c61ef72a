package service

import (
	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"gorm.io/gorm"
)

// FavoriteService 博客收藏服务
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	blogRepo     repository.BlogRepository
}

// NewFavoriteService 创建博客收藏服务
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, blogRepo repository.BlogRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		blogRepo:     blogRepo,
	}
}

// Add 收藏博客并累加收藏数
func (s *FavoriteService) Add(userID, blogID uint) error {
	blog, err := s.blogRepo.GetByID(blogID, false)
	if err != nil {
		return err
	}
	if blog == nil || blog.Status != constants.BlogStatusPublished {
		return ErrBlogNotFound
	}
	existing, err := s.favoriteRepo.Get(userID, blogID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrFavoriteExists
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.favoriteRepo.WithTx(tx).Create(&models.Favorite{UserID: userID, BlogID: blogID}); err != nil {
			return err
		}
		return s.blogRepo.WithTx(tx).IncrementFavoriteCount(blogID, 1)
	})
}

// Remove 取消收藏并递减收藏数（下限 0）
func (s *FavoriteService) Remove(userID, blogID uint) error {
	existing, err := s.favoriteRepo.Get(userID, blogID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFavoriteNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.favoriteRepo.WithTx(tx).Delete(userID, blogID); err != nil {
			return err
		}
		return s.blogRepo.WithTx(tx).IncrementFavoriteCount(blogID, -1)
	})
}

// ListBlogs 获取用户收藏的博客列表
func (s *FavoriteService) ListBlogs(userID uint, page, pageSize int) ([]models.Blog, int64, error) {
	blogIDs, err := s.favoriteRepo.BlogIDsByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	if len(blogIDs) == 0 {
		return []models.Blog{}, 0, nil
	}
	return s.blogRepo.List(repository.BlogListFilter{
		Page:        page,
		PageSize:    pageSize,
		BlogIDs:     blogIDs,
		Status:      constants.BlogStatusPublished,
		WithRelated: true,
		OmitContent: true,
	})
}
