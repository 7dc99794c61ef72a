package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminReviews 获取评价列表
func (h *Handler) GetAdminReviews(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.ReviewListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		productID, err := parseUintQuery(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid product_id", err)
			return
		}
		filter.ProductID = productID
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := parseUintQuery(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid user_id", err)
			return
		}
		filter.UserID = userID
	}
	if raw := strings.TrimSpace(c.Query("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid rating", err)
			return
		}
		filter.Rating = rating
	}

	reviews, total, err := h.ReviewService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "review fetch failed", err)
		return
	}

	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}

// ReviewStatusRequest 评价状态写入请求
type ReviewStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateReviewStatus 更新评价状态（active/hidden）并重算商品评分
func (h *Handler) UpdateReviewStatus(c *gin.Context) {
	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	review, err := h.ReviewService.UpdateStatus(reviewID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			respondError(c, response.CodeNotFound, "review not found", nil)
		case errors.Is(err, service.ErrReviewStatusInvalid):
			respondError(c, response.CodeBadRequest, "review status invalid", nil)
		default:
			respondError(c, response.CodeInternal, "review update failed", err)
		}
		return
	}

	response.Success(c, review)
}

// DeleteReview 删除评价并重算商品评分
func (h *Handler) DeleteReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ReviewService.Delete(reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			respondError(c, response.CodeNotFound, "review not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "review delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "review deleted", nil)
}
