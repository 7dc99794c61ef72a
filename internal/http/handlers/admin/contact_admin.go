package admin

import (
	"errors"
	"strings"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminContacts 获取联系表单列表
func (h *Handler) GetAdminContacts(c *gin.Context) {
	page, pageSize := parsePagination(c)

	contacts, total, err := h.ContactService.List(repository.ContactListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "contact fetch failed", err)
		return
	}

	response.SuccessWithPage(c, contacts, response.BuildPagination(page, pageSize, total))
}

// DeleteContact 删除联系表单
func (h *Handler) DeleteContact(c *gin.Context) {
	contactID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.ContactService.Delete(contactID); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, response.CodeNotFound, "contact not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "contact delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "contact deleted", nil)
}
