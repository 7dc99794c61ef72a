package service

import (
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	repo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(repo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo}
}

// CouponInput 优惠券写入输入（创建与更新共用）
type CouponInput struct {
	Code          string
	DiscountType  string
	DiscountValue models.Money
	MaxDiscount   models.Money
	MinOrderValue models.Money
	Status        string
}

func normalizeCouponInput(input *CouponInput) error {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" {
		return ErrCouponInvalid
	}
	input.DiscountType = strings.ToLower(strings.TrimSpace(input.DiscountType))
	if input.DiscountType != constants.CouponTypeFlat && input.DiscountType != constants.CouponTypePercent {
		return ErrCouponInvalid
	}
	if input.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrCouponInvalid
	}
	if input.DiscountType == constants.CouponTypePercent && input.DiscountValue.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrCouponInvalid
	}
	if input.MaxDiscount.Decimal.IsNegative() || input.MinOrderValue.Decimal.IsNegative() {
		return ErrCouponInvalid
	}
	if input.Status == "" {
		input.Status = constants.CouponStatusActive
	}
	if input.Status != constants.CouponStatusActive && input.Status != constants.CouponStatusInactive {
		return ErrCouponInvalid
	}
	return nil
}

// Create 创建优惠券
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	if err := normalizeCouponInput(&input); err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCouponInvalid
	}

	coupon := &models.Coupon{
		Code:          input.Code,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MaxDiscount:   input.MaxDiscount,
		MinOrderValue: input.MinOrderValue,
		UsageCount:    0,
		Status:        input.Status,
	}
	if err := s.repo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券（UsageCount 只增不改）
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if id == 0 {
		return nil, ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}
	if err := normalizeCouponInput(&input); err != nil {
		return nil, err
	}

	if input.Code != existing.Code {
		dup, err := s.repo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrCouponInvalid
		}
	}

	existing.Code = input.Code
	existing.DiscountType = input.DiscountType
	existing.DiscountValue = input.DiscountValue
	existing.MaxDiscount = input.MaxDiscount
	existing.MinOrderValue = input.MinOrderValue
	existing.Status = input.Status

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ToggleStatus 切换优惠券启用状态
func (s *CouponAdminService) ToggleStatus(id uint) (*models.Coupon, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}
	if existing.Status == constants.CouponStatusActive {
		existing.Status = constants.CouponStatusInactive
	} else {
		existing.Status = constants.CouponStatusActive
	}
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除优惠券
func (s *CouponAdminService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.repo.Delete(id)
}

// Get 获取优惠券详情
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}
