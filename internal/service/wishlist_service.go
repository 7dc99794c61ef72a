package service

import (
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List 获取用户心愿单
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Toggle 切换商品的心愿单状态，返回切换后是否在心愿单中
func (s *WishlistService) Toggle(userID, productID uint) (bool, error) {
	product, err := s.productRepo.GetByID(productID, false)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}

	existing, err := s.wishlistRepo.Get(userID, productID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.wishlistRepo.Delete(userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.wishlistRepo.Create(&models.WishlistItem{UserID: userID, ProductID: productID}); err != nil {
		return false, err
	}
	return true, nil
}
