package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// BlockStatusRequest 封禁状态写入请求
type BlockStatusRequest struct {
	IsBlocked *bool `json:"is_blocked" binding:"required"`
}

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}
	switch c.Query("blocked") {
	case "true":
		blocked := true
		filter.Blocked = &blocked
	case "false":
		blocked := false
		filter.Blocked = &blocked
	}

	users, total, err := h.AuthService.ListUsers(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetAdminUser 获取用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.AuthService.GetUser(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "user fetch failed", err)
		return
	}

	response.Success(c, user)
}

// UpdateUserBlockStatus 设置用户封禁状态
func (h *Handler) UpdateUserBlockStatus(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req BlockStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.AuthService.SetBlockStatus(userID, *req.IsBlocked)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "user update failed", err)
		return
	}

	response.Success(c, user)
}
