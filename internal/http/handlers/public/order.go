package public

import (
	"errors"

	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderLineRequest 订单行请求
type OrderLineRequest struct {
	ProductID     uint `json:"product_id" binding:"required"`
	QuantityIndex int  `json:"quantity_index"`
	PackageIndex  int  `json:"package_index"`
	Quantity      int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	AddressID  uint               `json:"address_id" binding:"required"`
	Items      []OrderLineRequest `json:"items" binding:"required"`
	CouponCode string             `json:"coupon_code"`
}

// PreviewCouponRequest 优惠券试算请求
type PreviewCouponRequest struct {
	Items      []OrderLineRequest `json:"items" binding:"required"`
	CouponCode string             `json:"coupon_code" binding:"required"`
}

func toOrderLines(items []OrderLineRequest) []service.CreateOrderLine {
	lines := make([]service.CreateOrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, service.CreateOrderLine{
			ProductID:     item.ProductID,
			QuantityIndex: item.QuantityIndex,
			PackageIndex:  item.PackageIndex,
			Quantity:      item.Quantity,
		})
	}
	return lines
}

// CreateOrder 创建订单并发起网关支付
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:     uid,
		AddressID:  req.AddressID,
		Items:      toOrderLines(req.Items),
		CouponCode: req.CouponCode,
	})
	if err != nil {
		if errors.Is(err, service.ErrPaymentGateway) {
			respondError(c, response.CodeBadGateway, "payment gateway error", err)
			return
		}
		respondOrderCreateError(c, err)
		return
	}

	response.Success(c, order)
}

// PreviewCoupon 订单前优惠券试算
func (h *Handler) PreviewCoupon(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	var req PreviewCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	preview, err := h.OrderService.PreviewCoupon(toOrderLines(req.Items), req.CouponCode)
	if err != nil {
		respondCouponPreviewError(c, err)
		return
	}

	response.Success(c, preview)
}

// ListOrders 获取本人订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	orders, total, err := h.OrderService.ListUserOrders(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 获取本人订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.OrderService.GetUserOrder(orderID, uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	response.Success(c, detail)
}
