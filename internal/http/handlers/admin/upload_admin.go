package admin

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传媒体文件，scene 决定存储前缀与校验规则
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}
	scene := c.DefaultPostForm("scene", "blog")

	url, err := h.UploadService.SaveFile(c.Request.Context(), file, scene)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadInvalidType):
			respondError(c, response.CodeBadRequest, "unsupported file type", nil)
		case errors.Is(err, service.ErrUploadTooLarge):
			respondError(c, response.CodeBadRequest, "file too large", nil)
		default:
			respondError(c, response.CodeInternal, "upload failed", err)
		}
		return
	}

	response.Success(c, gin.H{"url": url})
}
