package public

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系表单请求
type ContactRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// SubmitContact 提交联系表单
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	contact, err := h.ContactService.Submit(service.ContactInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "captcha invalid", nil)
		case errors.Is(err, service.ErrContactInvalid):
			respondError(c, response.CodeBadRequest, "contact form invalid", nil)
		default:
			respondError(c, response.CodeInternal, "contact submit failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "contact submitted", gin.H{"id": contact.ID})
}
