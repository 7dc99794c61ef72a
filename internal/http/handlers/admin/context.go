package admin

import (
	"strconv"

	handlershared "github.com/bloomcart/internal/http/handlers/shared"
	"github.com/bloomcart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的 :id，非法时直接响应 400。
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery 解析非零正整数查询参数。
func parseUintQuery(raw string) (uint, error) {
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed == 0 {
		return 0, strconv.ErrRange
	}
	return uint(parsed), nil
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}
