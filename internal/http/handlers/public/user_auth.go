package public

import (
	"errors"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/identity"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求，身份由令牌声明提供
type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

func getIdentityClaims(c *gin.Context) *identity.Claims {
	value, ok := c.Get(constants.ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := value.(*identity.Claims)
	if !ok {
		return nil
	}
	return claims
}

// Register 按身份令牌注册本地档案
func (h *Handler) Register(c *gin.Context) {
	claims := getIdentityClaims(c)
	if claims == nil {
		respondError(c, response.CodeUnauthorized, "token invalid", nil)
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.AuthService.Register(claims, service.RegisterInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, response.CodeUnauthorized, "token invalid", nil)
		case errors.Is(err, service.ErrUserExists):
			respondError(c, response.CodeConflict, "account already registered", nil)
		default:
			respondError(c, response.CodeInternal, "register failed", err)
		}
		return
	}

	response.Success(c, user)
}

// Login 按身份令牌登录，档案不存在时返回未注册
func (h *Handler) Login(c *gin.Context) {
	claims := getIdentityClaims(c)
	if claims == nil {
		respondError(c, response.CodeUnauthorized, "token invalid", nil)
		return
	}

	user, err := h.AuthService.Login(claims)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, response.CodeUnauthorized, "token invalid", nil)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, response.CodeUnauthorized, "account not registered", nil)
		case errors.Is(err, service.ErrUserBlocked):
			respondError(c, response.CodeForbidden, "account blocked", nil)
		case errors.Is(err, service.ErrUserDeleted):
			respondError(c, response.CodeGone, "account deleted", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}

	response.Success(c, user)
}

// UpdateProfile 更新用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.AuthService.UpdateProfile(uid, service.UpdateProfileInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "profile update failed", err)
		return
	}

	response.Success(c, user)
}

// DeleteAccount 注销账号（软删除）
func (h *Handler) DeleteAccount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.AuthService.DeleteAccount(uid); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "account delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "account deleted", nil)
}

// GetMyReviews 获取本人评价列表
func (h *Handler) GetMyReviews(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	reviews, total, err := h.ReviewService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "review fetch failed", err)
		return
	}

	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}

// GetMyFavoriteBlogs 获取本人收藏的博客列表
func (h *Handler) GetMyFavoriteBlogs(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	blogs, total, err := h.FavoriteService.ListBlogs(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "favorite fetch failed", err)
		return
	}

	response.SuccessWithPage(c, blogs, response.BuildPagination(page, pageSize, total))
}
