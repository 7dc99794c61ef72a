package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// BlogRequest 博客写入请求
type BlogRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Thumbnail   string `json:"thumbnail"`
	VideoLink   string `json:"video_link"`
	AuthorID    uint   `json:"author_id" binding:"required"`
	Status      string `json:"status"`
	Featured    bool   `json:"featured"`
	Popular     bool   `json:"popular"`
	SortOrder   int    `json:"sort_order"`
	CategoryIDs []uint `json:"category_ids"`
	TopicIDs    []uint `json:"topic_ids"`
}

func (r BlogRequest) toInput() service.BlogInput {
	return service.BlogInput{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Thumbnail:   r.Thumbnail,
		VideoLink:   r.VideoLink,
		AuthorID:    r.AuthorID,
		Status:      r.Status,
		Featured:    r.Featured,
		Popular:     r.Popular,
		SortOrder:   r.SortOrder,
		CategoryIDs: r.CategoryIDs,
		TopicIDs:    r.TopicIDs,
	}
}

// GetAdminBlogs 获取博客列表（不限状态）
func (h *Handler) GetAdminBlogs(c *gin.Context) {
	page, pageSize := parsePagination(c)

	blogs, total, err := h.BlogService.List(repository.BlogListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      strings.TrimSpace(c.Query("search")),
		Status:      c.Query("status"),
		WithRelated: true,
		OmitContent: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "blog fetch failed", err)
		return
	}

	response.SuccessWithPage(c, blogs, response.BuildPagination(page, pageSize, total))
}

// GetAdminBlog 获取博客详情（不限状态）
func (h *Handler) GetAdminBlog(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.BlogService.Get(blogID)
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

// CreateBlog 创建博客
func (h *Handler) CreateBlog(c *gin.Context) {
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	blog, err := h.BlogService.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlogTitleEmpty):
			respondError(c, response.CodeBadRequest, "blog title required", nil)
		case errors.Is(err, service.ErrAuthorNotFound):
			respondError(c, response.CodeBadRequest, "author not found", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		case errors.Is(err, service.ErrTopicNotFound):
			respondError(c, response.CodeBadRequest, "topic not found", nil)
		default:
			respondError(c, response.CodeInternal, "blog create failed", err)
		}
		return
	}

	response.Success(c, blog)
}

// UpdateBlog 更新博客
func (h *Handler) UpdateBlog(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	blog, err := h.BlogService.Update(blogID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlogNotFound):
			respondError(c, response.CodeNotFound, "blog not found", nil)
		case errors.Is(err, service.ErrAuthorNotFound):
			respondError(c, response.CodeBadRequest, "author not found", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		case errors.Is(err, service.ErrTopicNotFound):
			respondError(c, response.CodeBadRequest, "topic not found", nil)
		default:
			respondError(c, response.CodeInternal, "blog update failed", err)
		}
		return
	}

	response.Success(c, blog)
}

// ToggleBlogStatus 在发布与草稿之间切换博客状态
func (h *Handler) ToggleBlogStatus(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.BlogService.ToggleStatus(blogID)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, response.CodeNotFound, "blog not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "blog update failed", err)
		return
	}

	response.Success(c, blog)
}

// ToggleBlogFeatured 切换博客推荐标记
func (h *Handler) ToggleBlogFeatured(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.BlogService.ToggleFeatured(blogID)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, response.CodeNotFound, "blog not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "blog update failed", err)
		return
	}

	response.Success(c, blog)
}

// ToggleBlogPopular 切换博客热门标记
func (h *Handler) ToggleBlogPopular(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	blog, err := h.BlogService.TogglePopular(blogID)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, response.CodeNotFound, "blog not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "blog update failed", err)
		return
	}

	response.Success(c, blog)
}

// DeleteBlog 删除博客
func (h *Handler) DeleteBlog(c *gin.Context) {
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.BlogService.Delete(blogID); err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			respondError(c, response.CodeNotFound, "blog not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "blog delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "blog deleted", nil)
}
