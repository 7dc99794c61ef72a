package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类写入请求
type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	Featured  bool   `json:"featured"`
	Popular   bool   `json:"popular"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:      r.Name,
		Image:     r.Image,
		Status:    r.Status,
		Featured:  r.Featured,
		Popular:   r.Popular,
		SortOrder: r.SortOrder,
	}
}

// GetAdminCategories 获取分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	page, pageSize := parsePagination(c)

	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}

	response.SuccessWithPage(c, categories, response.BuildPagination(page, pageSize, total))
}

// GetAdminCategory 获取分类详情
func (h *Handler) GetAdminCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.CategoryService.Get(categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}

	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "category create failed", err)
		return
	}

	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.CategoryService.Update(categoryID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "category update failed", err)
		return
	}

	response.Success(c, category)
}

// ToggleCategoryStatus 切换分类启停状态
func (h *Handler) ToggleCategoryStatus(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.CategoryService.ToggleStatus(categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "category update failed", err)
		return
	}

	response.Success(c, category)
}

// DeleteCategory 删除分类，存在关联博客或话题时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(categoryID); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeConflict, "category has blogs or topics attached", nil)
		default:
			respondError(c, response.CodeInternal, "category delete failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "category deleted", nil)
}
