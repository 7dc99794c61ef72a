package public

import (
	"strconv"
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	h.listCategories(c, repository.CategoryListFilter{})
}

// GetFeaturedCategories 获取推荐分类列表
func (h *Handler) GetFeaturedCategories(c *gin.Context) {
	h.listCategories(c, repository.CategoryListFilter{FeaturedOnly: true})
}

// GetPopularCategories 获取热门分类列表
func (h *Handler) GetPopularCategories(c *gin.Context) {
	h.listCategories(c, repository.CategoryListFilter{PopularOnly: true})
}

func (h *Handler) listCategories(c *gin.Context, filter repository.CategoryListFilter) {
	page, pageSize := parsePagination(c)
	filter.Page = page
	filter.PageSize = pageSize
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Status = constants.StatusActive

	categories, total, err := h.CategoryService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}

	response.SuccessWithPage(c, categories, response.BuildPagination(page, pageSize, total))
}

// GetTopics 获取话题列表
func (h *Handler) GetTopics(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.TopicListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   constants.StatusActive,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "invalid category_id", err)
			return
		}
		filter.CategoryID = uint(parsed)
	}

	topics, total, err := h.TopicService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "topic fetch failed", err)
		return
	}

	response.SuccessWithPage(c, topics, response.BuildPagination(page, pageSize, total))
}

// GetAuthors 获取作者列表
func (h *Handler) GetAuthors(c *gin.Context) {
	page, pageSize := parsePagination(c)

	authors, total, err := h.AuthorService.List(repository.AuthorListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   constants.StatusActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "author fetch failed", err)
		return
	}

	response.SuccessWithPage(c, authors, response.BuildPagination(page, pageSize, total))
}
