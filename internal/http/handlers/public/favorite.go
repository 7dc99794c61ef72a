package public

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// AddFavorite 收藏博客
func (h *Handler) AddFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.FavoriteService.Add(uid, blogID); err != nil {
		switch {
		case errors.Is(err, service.ErrBlogNotFound):
			respondError(c, response.CodeNotFound, "blog not found", nil)
		case errors.Is(err, service.ErrFavoriteExists):
			respondError(c, response.CodeConflict, "blog already favorited", nil)
		default:
			respondError(c, response.CodeInternal, "favorite add failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "blog favorited", nil)
}

// RemoveFavorite 取消收藏博客
func (h *Handler) RemoveFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	blogID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.FavoriteService.Remove(uid, blogID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			respondError(c, response.CodeNotFound, "favorite not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "favorite remove failed", err)
		return
	}

	response.SuccessWithMsg(c, "favorite removed", nil)
}
