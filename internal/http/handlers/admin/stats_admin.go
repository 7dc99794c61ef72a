package admin

import (
	"github.com/bloomcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStats 获取总量统计
func (h *Handler) GetStats(c *gin.Context) {
	totals, err := h.StatsService.Totals(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "stats fetch failed", err)
		return
	}

	response.Success(c, totals)
}

// GetRevenueStats 获取周期营收统计
func (h *Handler) GetRevenueStats(c *gin.Context) {
	stats, err := h.StatsService.Revenue(c.Query("period"))
	if err != nil {
		respondError(c, response.CodeInternal, "stats fetch failed", err)
		return
	}

	response.Success(c, stats)
}

// GetOrdersByStatus 按状态统计订单数
func (h *Handler) GetOrdersByStatus(c *gin.Context) {
	counts, err := h.StatsService.OrdersByStatus()
	if err != nil {
		respondError(c, response.CodeInternal, "stats fetch failed", err)
		return
	}

	response.Success(c, counts)
}
