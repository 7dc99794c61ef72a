package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBlogs 获取已发布博客列表
func (h *Handler) GetBlogs(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.BlogListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      strings.TrimSpace(c.Query("search")),
		Status:      constants.BlogStatusPublished,
		WithRelated: true,
		OmitContent: true,
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "invalid category_id", err)
			return
		}
		filter.CategoryID = uint(parsed)
	}
	if raw := strings.TrimSpace(c.Query("topic_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "invalid topic_id", err)
			return
		}
		filter.TopicID = uint(parsed)
	}
	if raw := strings.TrimSpace(c.Query("author_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "invalid author_id", err)
			return
		}
		filter.AuthorID = uint(parsed)
	}

	blogs, total, err := h.BlogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "blog fetch failed", err)
		return
	}

	response.SuccessWithPage(c, blogs, response.BuildPagination(page, pageSize, total))
}

// GetFeaturedBlogs 获取推荐博客列表
func (h *Handler) GetFeaturedBlogs(c *gin.Context) {
	h.listCuratedBlogs(c, repository.BlogListFilter{FeaturedOnly: true})
}

// GetPopularBlogs 获取热门博客列表
func (h *Handler) GetPopularBlogs(c *gin.Context) {
	h.listCuratedBlogs(c, repository.BlogListFilter{PopularOnly: true})
}

func (h *Handler) listCuratedBlogs(c *gin.Context, filter repository.BlogListFilter) {
	page, pageSize := parsePagination(c)
	filter.Page = page
	filter.PageSize = pageSize
	filter.Status = constants.BlogStatusPublished
	filter.WithRelated = true
	filter.OmitContent = true

	blogs, total, err := h.BlogService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "blog fetch failed", err)
		return
	}

	response.SuccessWithPage(c, blogs, response.BuildPagination(page, pageSize, total))
}

// GetBlog 获取已发布博客详情，浏览数加一
func (h *Handler) GetBlog(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.BlogService.GetPublished(blogID)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, response.CodeNotFound, "blog not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "blog fetch failed", err)
		return
	}

	response.Success(c, blog)
}
