package public

import (
	"github.com/bloomcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetActiveCoupons 获取当前可用优惠券列表
func (h *Handler) GetActiveCoupons(c *gin.Context) {
	page, pageSize := parsePagination(c)

	coupons, total, err := h.CouponService.ListActive(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "coupon fetch failed", err)
		return
	}

	response.SuccessWithPage(c, coupons, response.BuildPagination(page, pageSize, total))
}
