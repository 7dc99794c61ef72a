package service

import (
	"math"
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewReviewService 创建商品评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	UserID    uint
	ProductID uint
	OrderID   uint
	Rating    int
	Message   string
}

// Create 创建评价并重算商品评分。
// 仅允许对本人已送达订单中的商品评价，且每人每商品一条。
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrReviewRatingInvalid
	}
	message := strings.TrimSpace(input.Message)
	if len([]rune(message)) < constants.ReviewMessageMinChars {
		return nil, ErrReviewMessageTooShort
	}

	product, err := s.productRepo.GetByID(input.ProductID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	order, err := s.orderRepo.GetByIDForUser(input.OrderID, input.UserID, true)
	if err != nil {
		return nil, err
	}
	if order == nil || order.Status != constants.OrderStatusDelivered {
		return nil, ErrReviewOrderInvalid
	}
	containsProduct := false
	for _, item := range order.Items {
		if item.ProductID == input.ProductID {
			containsProduct = true
			break
		}
	}
	if !containsProduct {
		return nil, ErrReviewOrderInvalid
	}

	existing, err := s.reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Message:   message,
		Status:    constants.ReviewStatusActive,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).Create(review); err != nil {
			return err
		}
		return s.reaggregate(tx, input.ProductID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("review_created",
		"user_id", input.UserID,
		"product_id", input.ProductID,
		"rating", input.Rating,
	)
	return review, nil
}

// Delete 删除评价并重算商品评分（管理端）
func (s *ReviewService) Delete(id uint) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		return s.reaggregate(tx, review.ProductID)
	})
}

// UpdateStatus 更新评价状态（管理端），状态变化后重算商品评分
func (s *ReviewService) UpdateStatus(id uint, status string) (*models.Review, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.ReviewStatusActive && status != constants.ReviewStatusHidden {
		return nil, ErrReviewStatusInvalid
	}
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.Status == status {
		return review, nil
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).UpdateStatus(id, status); err != nil {
			return err
		}
		return s.reaggregate(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	review.Status = status
	logger.Infow("review_status_updated",
		"review_id", id,
		"product_id", review.ProductID,
		"status", status,
	)
	return review, nil
}

// ProductReviews 商品评价列表与评分分布
type ProductReviews struct {
	Reviews      []models.Review `json:"reviews"`
	Total        int64           `json:"total"`
	RatingAvg    float64         `json:"rating_avg"`
	RatingCount  int             `json:"rating_count"`
	Distribution map[int]int64   `json:"distribution"`
}

// ListByProduct 获取商品的评价列表，附带评分分布
func (s *ReviewService) ListByProduct(productID uint, page, pageSize int, sort string) (*ProductReviews, error) {
	product, err := s.productRepo.GetByID(productID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	reviews, total, err := s.reviewRepo.List(repository.ReviewListFilter{
		ProductID: productID,
		Status:    constants.ReviewStatusActive,
		Page:      page,
		PageSize:  pageSize,
		Sort:      sort,
	})
	if err != nil {
		return nil, err
	}
	distribution, err := s.reviewRepo.RatingDistribution(productID)
	if err != nil {
		return nil, err
	}
	return &ProductReviews{
		Reviews:      reviews,
		Total:        total,
		RatingAvg:    product.RatingAvg,
		RatingCount:  product.RatingCount,
		Distribution: distribution,
	}, nil
}

// ListByUser 获取用户自己的评价列表
func (s *ReviewService) ListByUser(userID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// List 获取评价列表（管理端）
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// reaggregate 重算商品平均评分（保留 1 位小数），无评价时归零
func (s *ReviewService) reaggregate(tx *gorm.DB, productID uint) error {
	reviews, err := s.reviewRepo.WithTx(tx).ListActiveByProduct(productID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return s.productRepo.WithTx(tx).UpdateRating(productID, 0, 0)
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	avg := math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return s.productRepo.WithTx(tx).UpdateRating(productID, avg, len(reviews))
}
