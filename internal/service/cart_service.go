package service

import (
	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// UpsertLineInput 购物车行写入输入
type UpsertLineInput struct {
	ProductID     uint
	QuantityIndex int
	PackageIndex  int
	Quantity      int
}

// List 获取用户购物车
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	return s.cartRepo.ListByUser(userID)
}

// UpsertLine 以 (商品, 规格档位, 价格档位) 为键写入购物车行。
// 数量为 0 删除该行，已存在则覆盖数量。
func (s *CartService) UpsertLine(userID uint, input UpsertLineInput) (*models.CartItem, error) {
	if input.ProductID == 0 || input.Quantity < 0 {
		return nil, ErrCartLineInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID, false)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsPublished || product.Status != constants.StatusActive {
		return nil, ErrProductNotFound
	}
	if product.PackageAt(input.QuantityIndex, input.PackageIndex) == nil {
		return nil, ErrPackageInvalid
	}

	existing, err := s.cartRepo.GetLine(userID, input.ProductID, input.QuantityIndex, input.PackageIndex)
	if err != nil {
		return nil, err
	}

	if input.Quantity == 0 {
		if existing != nil {
			if err := s.cartRepo.Delete(existing.ID); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	if existing != nil {
		existing.Quantity = input.Quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &models.CartItem{
		UserID:        userID,
		ProductID:     input.ProductID,
		QuantityIndex: input.QuantityIndex,
		PackageIndex:  input.PackageIndex,
		Quantity:      input.Quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Clear 清空用户购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}
