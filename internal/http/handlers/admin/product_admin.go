package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品写入请求
type ProductRequest struct {
	Name            string                    `json:"name" binding:"required"`
	Description     string                    `json:"description"`
	Images          models.StringArray        `json:"images"`
	VideoURL        string                    `json:"video_url"`
	QuantityDetails models.QuantityDetailList `json:"quantity_details" binding:"required"`
	Metadata        models.JSON               `json:"metadata"`
	SortOrder       int                       `json:"sort_order"`
	IsPublished     bool                      `json:"is_published"`
	IsPopular       bool                      `json:"is_popular"`
	IsFeatured      bool                      `json:"is_featured"`
	Status          string                    `json:"status"`
	CategoryIDs     []uint                    `json:"category_ids"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:            r.Name,
		Description:     r.Description,
		Images:          r.Images,
		VideoURL:        r.VideoURL,
		QuantityDetails: r.QuantityDetails,
		Metadata:        r.Metadata,
		SortOrder:       r.SortOrder,
		IsPublished:     r.IsPublished,
		IsPopular:       r.IsPopular,
		IsFeatured:      r.IsFeatured,
		Status:          r.Status,
		CategoryIDs:     r.CategoryIDs,
	}
}

// GetAdminProducts 获取商品列表（不限状态）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   c.Query("status"),
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		categoryID, err := parseUintQuery(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid category_id", err)
			return
		}
		filter.CategoryID = categoryID
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情（不限状态）
func (h *Handler) GetAdminProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.Get(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductWriteError(c, err, "product create failed")
		return
	}

	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := h.ProductService.Update(productID, req.toInput())
	if err != nil {
		respondProductWriteError(c, err, "product update failed")
		return
	}

	response.Success(c, product)
}

func respondProductWriteError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrProductPriceInvalid):
		respondError(c, response.CodeBadRequest, "sell price exceeds base price", nil)
	case errors.Is(err, service.ErrProductCategoryNotFound):
		respondError(c, response.CodeBadRequest, "product category not found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// ToggleProductStatus 切换商品启停状态
func (h *Handler) ToggleProductStatus(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.ToggleStatus(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product update failed", err)
		return
	}

	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ProductService.Delete(productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "product deleted", nil)
}
