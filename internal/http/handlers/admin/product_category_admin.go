package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductCategoryRequest 商品分类写入请求
type ProductCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	SortOrder int    `json:"sort_order"`
}

func (r ProductCategoryRequest) toInput() service.ProductCategoryInput {
	return service.ProductCategoryInput{
		Name:      r.Name,
		Image:     r.Image,
		Status:    r.Status,
		SortOrder: r.SortOrder,
	}
}

// GetAdminProductCategories 获取商品分类列表
func (h *Handler) GetAdminProductCategories(c *gin.Context) {
	page, pageSize := parsePagination(c)

	categories, total, err := h.ProductCategoryService.List(repository.ProductCategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product category fetch failed", err)
		return
	}

	response.SuccessWithPage(c, categories, response.BuildPagination(page, pageSize, total))
}

// GetAdminProductCategory 获取商品分类详情
func (h *Handler) GetAdminProductCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.ProductCategoryService.Get(categoryID)
	if err != nil {
		if errors.Is(err, service.ErrProductCategoryNotFound) {
			respondError(c, response.CodeNotFound, "product category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product category fetch failed", err)
		return
	}

	response.Success(c, category)
}

// CreateProductCategory 创建商品分类
func (h *Handler) CreateProductCategory(c *gin.Context) {
	var req ProductCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.ProductCategoryService.Create(req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "product category create failed", err)
		return
	}

	response.Success(c, category)
}

// UpdateProductCategory 更新商品分类
func (h *Handler) UpdateProductCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	category, err := h.ProductCategoryService.Update(categoryID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrProductCategoryNotFound) {
			respondError(c, response.CodeNotFound, "product category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product category update failed", err)
		return
	}

	response.Success(c, category)
}

// ToggleProductCategoryStatus 切换商品分类启停状态
func (h *Handler) ToggleProductCategoryStatus(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	category, err := h.ProductCategoryService.ToggleStatus(categoryID)
	if err != nil {
		if errors.Is(err, service.ErrProductCategoryNotFound) {
			respondError(c, response.CodeNotFound, "product category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product category update failed", err)
		return
	}

	response.Success(c, category)
}

// DeleteProductCategory 删除商品分类，存在关联商品时拒绝
func (h *Handler) DeleteProductCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProductCategoryService.Delete(categoryID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductCategoryNotFound):
			respondError(c, response.CodeNotFound, "product category not found", nil)
		case errors.Is(err, service.ErrProductCategoryInUse):
			respondError(c, response.CodeConflict, "product category has products attached", nil)
		default:
			respondError(c, response.CodeInternal, "product category delete failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "product category deleted", nil)
}
