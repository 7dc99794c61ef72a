package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// TopicRequest 话题写入请求
type TopicRequest struct {
	Name        string `json:"name" binding:"required"`
	Status      string `json:"status"`
	Featured    bool   `json:"featured"`
	Popular     bool   `json:"popular"`
	SortOrder   int    `json:"sort_order"`
	CategoryIDs []uint `json:"category_ids"`
}

func (r TopicRequest) toInput() service.TopicInput {
	return service.TopicInput{
		Name:        r.Name,
		Status:      r.Status,
		Featured:    r.Featured,
		Popular:     r.Popular,
		SortOrder:   r.SortOrder,
		CategoryIDs: r.CategoryIDs,
	}
}

// GetAdminTopics 获取话题列表
func (h *Handler) GetAdminTopics(c *gin.Context) {
	page, pageSize := parsePagination(c)

	topics, total, err := h.TopicService.List(repository.TopicListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "topic fetch failed", err)
		return
	}

	response.SuccessWithPage(c, topics, response.BuildPagination(page, pageSize, total))
}

// GetAdminTopic 获取话题详情
func (h *Handler) GetAdminTopic(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}

	topic, err := h.TopicService.Get(topicID)
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			respondError(c, response.CodeNotFound, "topic not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "topic fetch failed", err)
		return
	}

	response.Success(c, topic)
}

// CreateTopic 创建话题
func (h *Handler) CreateTopic(c *gin.Context) {
	var req TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	topic, err := h.TopicService.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeBadRequest, "category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "topic create failed", err)
		return
	}

	response.Success(c, topic)
}

// UpdateTopic 更新话题
func (h *Handler) UpdateTopic(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	topic, err := h.TopicService.Update(topicID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTopicNotFound):
			respondError(c, response.CodeNotFound, "topic not found", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeBadRequest, "category not found", nil)
		default:
			respondError(c, response.CodeInternal, "topic update failed", err)
		}
		return
	}

	response.Success(c, topic)
}

// ToggleTopicStatus 切换话题启停状态
func (h *Handler) ToggleTopicStatus(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}

	topic, err := h.TopicService.ToggleStatus(topicID)
	if err != nil {
		if errors.Is(err, service.ErrTopicNotFound) {
			respondError(c, response.CodeNotFound, "topic not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "topic update failed", err)
		return
	}

	response.Success(c, topic)
}

// DeleteTopic 删除话题，存在关联博客时拒绝
func (h *Handler) DeleteTopic(c *gin.Context) {
	topicID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.TopicService.Delete(topicID); err != nil {
		switch {
		case errors.Is(err, service.ErrTopicNotFound):
			respondError(c, response.CodeNotFound, "topic not found", nil)
		case errors.Is(err, service.ErrTopicInUse):
			respondError(c, response.CodeConflict, "topic has blogs attached", nil)
		default:
			respondError(c, response.CodeInternal, "topic delete failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "topic deleted", nil)
}
