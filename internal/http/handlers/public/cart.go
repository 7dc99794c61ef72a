package public

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertCartLineRequest 购物车行写入请求。
// Quantity 为 0 表示删除该行。
type UpsertCartLineRequest struct {
	ProductID     uint `json:"product_id" binding:"required"`
	QuantityIndex int  `json:"quantity_index"`
	PackageIndex  int  `json:"package_index"`
	Quantity      *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "cart fetch failed", err)
		return
	}

	response.Success(c, items)
}

// UpsertCartLine 写入购物车行
func (h *Handler) UpsertCartLine(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpsertCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	item, err := h.CartService.UpsertLine(uid, service.UpsertLineInput{
		ProductID:     req.ProductID,
		QuantityIndex: req.QuantityIndex,
		PackageIndex:  req.PackageIndex,
		Quantity:      *req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartLineInvalid):
			respondError(c, response.CodeBadRequest, "cart line invalid", nil)
		case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrProductUnavailable):
			respondError(c, response.CodeBadRequest, "product not available", nil)
		case errors.Is(err, service.ErrPackageInvalid):
			respondError(c, response.CodeBadRequest, "package selection invalid", nil)
		default:
			respondError(c, response.CodeInternal, "cart update failed", err)
		}
		return
	}

	if item == nil {
		response.SuccessWithMsg(c, "cart line removed", nil)
		return
	}
	response.Success(c, item)
}
