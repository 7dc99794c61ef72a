package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取已上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		Search:        strings.TrimSpace(c.Query("search")),
		PublishedOnly: true,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "invalid category_id", err)
			return
		}
		filter.CategoryID = uint(parsed)
	}
	switch c.Query("curated") {
	case "":
	case "featured":
		filter.FeaturedOnly = true
	case "popular":
		filter.PopularOnly = true
	default:
		respondError(c, response.CodeBadRequest, "invalid curated filter", nil)
		return
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取已上架商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetPublished(productID)
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

// GetProductReviews 获取商品评价列表与评分分布
func (h *Handler) GetProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)
	sort := c.DefaultQuery("sort", "new_to_old")

	reviews, err := h.ReviewService.ListByProduct(productID, page, pageSize, sort)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "review fetch failed", err)
		return
	}

	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, reviews.Total))
}
