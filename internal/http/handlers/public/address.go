package public

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 地址写入请求
type AddressRequest struct {
	Line      string `json:"line" binding:"required"`
	Zipcode   string `json:"zipcode" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Line:      r.Line,
		Zipcode:   r.Zipcode,
		City:      r.City,
		State:     r.State,
		Label:     r.Label,
		IsDefault: r.IsDefault,
	}
}

// GetAddresses 获取地址列表，默认地址在前
func (h *Handler) GetAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	addresses, total, err := h.AddressService.List(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "address fetch failed", err)
		return
	}

	response.SuccessWithPage(c, addresses, response.BuildPagination(page, pageSize, total))
}

// CreateAddress 创建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.AddressService.Create(uid, req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "address create failed", err)
		return
	}

	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	address, err := h.AddressService.Update(addressID, uid, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "address not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "address update failed", err)
		return
	}

	response.Success(c, address)
}

// SetDefaultAddress 设置默认地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	address, err := h.AddressService.SetDefault(addressID, uid)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "address not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "address update failed", err)
		return
	}

	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.AddressService.Delete(addressID, uid); err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			respondError(c, response.CodeNotFound, "address not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "address delete failed", err)
		return
	}

	response.SuccessWithMsg(c, "address deleted", nil)
}
