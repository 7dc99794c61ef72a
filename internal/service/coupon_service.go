package service

import (
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// ApplyCoupon 校验优惠码并计算折扣金额。
// 折扣先按 MaxDiscount 封顶，再做 2 位小数舍入。
func (s *CouponService) ApplyCoupon(subtotal models.Money, code string) (models.Money, *models.Coupon, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return models.Money{}, nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if coupon == nil {
		return models.Money{}, nil, ErrCouponNotFound
	}
	if coupon.Status != constants.CouponStatusActive {
		return models.Money{}, coupon, ErrCouponInactive
	}

	if subtotal.Decimal.Cmp(coupon.MinOrderValue.Decimal) < 0 {
		return models.Money{}, coupon, ErrCouponMinOrderValue
	}

	discount, err := calculateDiscount(coupon, subtotal)
	if err != nil {
		return models.Money{}, coupon, err
	}

	if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
		discount = coupon.MaxDiscount.Decimal
	}
	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal.Decimal
	}

	return models.NewMoneyFromDecimal(discount.Round(2)), coupon, nil
}

// ListActive 获取当前可用的优惠券（公开展示）
func (s *CouponService) ListActive(page, pageSize int) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   constants.CouponStatusActive,
	})
}

func calculateDiscount(coupon *models.Coupon, subtotal models.Money) (decimal.Decimal, error) {
	switch strings.ToLower(strings.TrimSpace(coupon.DiscountType)) {
	case constants.CouponTypeFlat:
		if coupon.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, ErrCouponInvalid
		}
		return coupon.DiscountValue.Decimal, nil
	case constants.CouponTypePercent:
		if coupon.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, ErrCouponInvalid
		}
		percent := coupon.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		return subtotal.Decimal.Mul(percent), nil
	default:
		return decimal.Zero, ErrCouponInvalid
	}
}
