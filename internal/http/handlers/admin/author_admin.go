package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthorRequest 作者写入请求
type AuthorRequest struct {
	Name            string `json:"name" binding:"required"`
	InstagramHandle string `json:"instagram_handle"`
	Description     string `json:"description"`
	ProfileImage    string `json:"profile_image"`
	Status          string `json:"status"`
	SortOrder       int    `json:"sort_order"`
}

func (r AuthorRequest) toInput() service.AuthorInput {
	return service.AuthorInput{
		Name:            r.Name,
		InstagramHandle: r.InstagramHandle,
		Description:     r.Description,
		ProfileImage:    r.ProfileImage,
		Status:          r.Status,
		SortOrder:       r.SortOrder,
	}
}

// GetAdminAuthors 获取作者列表
func (h *Handler) GetAdminAuthors(c *gin.Context) {
	page, pageSize := parsePagination(c)

	authors, total, err := h.AuthorService.List(repository.AuthorListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "author fetch failed", err)
		return
	}

	response.SuccessWithPage(c, authors, response.BuildPagination(page, pageSize, total))
}

// GetAdminAuthor 获取作者详情
func (h *Handler) GetAdminAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	author, err := h.AuthorService.Get(authorID)
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			respondError(c, response.CodeNotFound, "author not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "author fetch failed", err)
		return
	}

	response.Success(c, author)
}

// CreateAuthor 创建作者
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	author, err := h.AuthorService.Create(req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "author create failed", err)
		return
	}

	response.Success(c, author)
}

// UpdateAuthor 更新作者
func (h *Handler) UpdateAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	author, err := h.AuthorService.Update(authorID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			respondError(c, response.CodeNotFound, "author not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "author update failed", err)
		return
	}

	response.Success(c, author)
}

// ToggleAuthorStatus 切换作者启停状态
func (h *Handler) ToggleAuthorStatus(c *gin.Context) {
	authorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	author, err := h.AuthorService.ToggleStatus(authorID)
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			respondError(c, response.CodeNotFound, "author not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "author update failed", err)
		return
	}

	response.Success(c, author)
}

// DeleteAuthor 删除作者，存在关联博客时拒绝
func (h *Handler) DeleteAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.AuthorService.Delete(authorID); err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorNotFound):
			respondError(c, response.CodeNotFound, "author not found", nil)
		case errors.Is(err, service.ErrAuthorInUse):
			respondError(c, response.CodeConflict, "author has blogs attached", nil)
		default:
			respondError(c, response.CodeInternal, "author delete failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "author deleted", nil)
}
