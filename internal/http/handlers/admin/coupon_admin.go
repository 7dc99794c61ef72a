package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest 优惠券写入请求
type CouponRequest struct {
	Code          string  `json:"code" binding:"required"`
	DiscountType  string  `json:"discount_type" binding:"required"`
	DiscountValue float64 `json:"discount_value" binding:"required"`
	MaxDiscount   float64 `json:"max_discount"`
	MinOrderValue float64 `json:"min_order_value"`
	Status        string  `json:"status"`
}

func (r CouponRequest) toInput() service.CouponInput {
	return service.CouponInput{
		Code:          r.Code,
		DiscountType:  r.DiscountType,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.DiscountValue)),
		MaxDiscount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MaxDiscount)),
		MinOrderValue: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinOrderValue)),
		Status:        r.Status,
	}
}

// GetAdminCoupons 获取优惠券列表
func (h *Handler) GetAdminCoupons(c *gin.Context) {
	page, pageSize := parsePagination(c)

	coupons, total, err := h.CouponAdminService.List(repository.CouponListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		Status:       c.Query("status"),
		DiscountType: c.Query("discount_type"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "coupon fetch failed", err)
		return
	}

	response.SuccessWithPage(c, coupons, response.BuildPagination(page, pageSize, total))
}

// GetAdminCoupon 获取优惠券详情
func (h *Handler) GetAdminCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}

	coupon, err := h.CouponAdminService.Get(couponID)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "coupon fetch failed", err)
		return
	}

	response.Success(c, coupon)
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrCouponInvalid) {
			respondError(c, response.CodeBadRequest, "coupon invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "coupon create failed", err)
		return
	}

	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(couponID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "coupon not found", nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "coupon invalid", nil)
		default:
			respondError(c, response.CodeInternal, "coupon update failed", err)
		}
		return
	}

	response.Success(c, coupon)
}

// ToggleCouponStatus 切换优惠券启停状态
func (h *Handler) ToggleCouponStatus(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}

	coupon, err := h.CouponAdminService.ToggleStatus(couponID)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "coupon update failed", err)
		return
	}

	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CouponAdminService.Delete(couponID); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "coupon delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "coupon deleted", nil)
}
