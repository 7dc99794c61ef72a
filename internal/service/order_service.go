package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/payment/razorpay"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	addressRepo   repository.AddressRepository
	cartRepo      repository.CartRepository
	couponRepo    repository.CouponRepository
	couponService *CouponService
	queueClient   *queue.Client
	gatewayCfg    *razorpay.Config
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, addressRepo repository.AddressRepository, cartRepo repository.CartRepository, couponRepo repository.CouponRepository, couponService *CouponService, queueClient *queue.Client, gatewayCfg *razorpay.Config) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		addressRepo:   addressRepo,
		cartRepo:      cartRepo,
		couponRepo:    couponRepo,
		couponService: couponService,
		queueClient:   queueClient,
		gatewayCfg:    gatewayCfg,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID     uint
	AddressID  uint
	Items      []CreateOrderLine
	CouponCode string
}

// CreateOrderLine 创建订单行输入
type CreateOrderLine struct {
	ProductID     uint
	QuantityIndex int
	PackageIndex  int
	Quantity      int
}

// CouponPreview 优惠券试算结果
type CouponPreview struct {
	Subtotal       models.Money `json:"subtotal"`
	DiscountAmount models.Money `json:"discount_amount"`
	TotalAmount    models.Money `json:"total_amount"`
	CouponCode     string       `json:"coupon_code"`
}

// allowedTransitions 订单状态迁移表，键为当前状态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

type orderPricing struct {
	Items          []models.OrderItem
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Coupon         *models.Coupon
}

// CreateOrder 创建订单：计价、创建网关订单、落库，三步依次进行。
// 网关成功但落库失败时不做补偿，由上层以网关错误码返回。
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidOrderItem
	}

	address, err := s.addressRepo.GetByIDForUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	pricing, err := s.buildPricing(input.Items, input.CouponCode)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		AddressID:      address.ID,
		Subtotal:       models.NewMoneyFromDecimal(pricing.Subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(pricing.DiscountAmount),
		TotalAmount:    models.NewMoneyFromDecimal(pricing.TotalAmount),
		Status:         constants.OrderStatusPending,
		PaymentStatus:  constants.PaymentStatusPending,
		PaymentMethod:  constants.PaymentMethodGateway,
		Items:          pricing.Items,
	}
	if pricing.Coupon != nil {
		order.CouponCode = pricing.Coupon.Code
	}

	notes := map[string]string{
		"user_id": fmt.Sprintf("%d", input.UserID),
	}
	if order.CouponCode != "" {
		notes["coupon_code"] = order.CouponCode
	}
	gatewayOrder, err := razorpay.CreateOrder(ctx, s.gatewayCfg, razorpay.CreateOrderInput{
		AmountMinor: order.TotalAmount.MinorUnits(),
		Currency:    s.gatewayCfg.Currency,
		Receipt:     order.OrderNo,
		Notes:       notes,
	})
	if err != nil {
		logger.Errorw("gateway_order_create_failed",
			"order_no", order.OrderNo,
			"user_id", input.UserID,
			"error", err,
		)
		return nil, ErrPaymentGateway
	}
	order.GatewayOrderID = gatewayOrder.OrderID

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		if pricing.Coupon != nil {
			if err := s.couponRepo.WithTx(tx).IncrementUsageCount(pricing.Coupon.ID); err != nil {
				return err
			}
		}
		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		logger.Errorw("order_persist_failed",
			"order_no", order.OrderNo,
			"gateway_order_id", order.GatewayOrderID,
			"error", err,
		)
		return nil, ErrPaymentGateway
	}

	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", input.UserID,
		"total_amount", order.TotalAmount.String(),
		"gateway_order_id", order.GatewayOrderID,
	)
	return order, nil
}

// PreviewCoupon 对一组订单行试算优惠金额，不落库
func (s *OrderService) PreviewCoupon(items []CreateOrderLine, couponCode string) (*CouponPreview, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	pricing, err := s.buildPricing(items, couponCode)
	if err != nil {
		return nil, err
	}
	preview := &CouponPreview{
		Subtotal:       models.NewMoneyFromDecimal(pricing.Subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(pricing.DiscountAmount),
		TotalAmount:    models.NewMoneyFromDecimal(pricing.TotalAmount),
	}
	if pricing.Coupon != nil {
		preview.CouponCode = pricing.Coupon.Code
	}
	return preview, nil
}

// buildPricing 计算小计、折扣、实付金额并生成带快照的订单项
func (s *OrderService) buildPricing(lines []CreateOrderLine, couponCode string) (*orderPricing, error) {
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		product, err := s.productRepo.GetByID(line.ProductID, false)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if !product.IsPublished || product.Status != constants.StatusActive {
			return nil, ErrProductUnavailable
		}
		pkg := product.PackageAt(line.QuantityIndex, line.PackageIndex)
		if pkg == nil {
			return nil, ErrPackageInvalid
		}

		unitPrice := pkg.SellPrice.Decimal
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		items = append(items, models.OrderItem{
			ProductID:     product.ID,
			QuantityIndex: line.QuantityIndex,
			PackageIndex:  line.PackageIndex,
			Quantity:      line.Quantity,
			UnitPrice:     models.NewMoneyFromDecimal(unitPrice),
			TotalPrice:    models.NewMoneyFromDecimal(lineTotal),
			PackageName:   pkg.Name,
			QuantityLabel: product.QuantityDetails[line.QuantityIndex].Quantity,
			BasePrice:     pkg.BasePrice,
			DiscountType:  pkg.DiscountType,
			DiscountValue: pkg.DiscountAmount,
		})
	}

	pricing := &orderPricing{
		Items:    items,
		Subtotal: subtotal,
	}

	discount := decimal.Zero
	if couponCode != "" {
		applied, coupon, err := s.couponService.ApplyCoupon(models.NewMoneyFromDecimal(subtotal), couponCode)
		if err != nil {
			return nil, err
		}
		discount = applied.Decimal
		pricing.Coupon = coupon
	}

	pricing.DiscountAmount = discount
	pricing.TotalAmount = subtotal.Sub(discount).Round(2)
	return pricing, nil
}

// ListUserOrders 获取用户订单列表
func (s *OrderService) ListUserOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.List(repository.OrderListFilter{
		UserID:    userID,
		Page:      page,
		PageSize:  pageSize,
		WithItems: true,
	})
}

// GetUserOrder 获取用户订单详情并解析每个订单项的价格档位
func (s *OrderService) GetUserOrder(id, userID uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByIDForUser(id, userID, true)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.buildOrderDetail(order)
}

// GetOrder 获取订单详情（管理端）
func (s *OrderService) GetOrder(id uint) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.buildOrderDetail(order)
}

// ListOrders 获取订单列表（管理端）
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateStatus 管理端更新订单状态，非法迁移被拒绝
func (s *OrderService) UpdateStatus(id uint, target string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id, false)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	nexts, ok := allowedTransitions[order.Status]
	if !ok || !nexts[target] {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateStatus(id, target); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	logger.Infow("order_status_updated",
		"order_id", id,
		"order_no", order.OrderNo,
		"from", order.Status,
		"to", target,
	)
	order.Status = target
	return order, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("BC%s%s", now, randNumeric(6))
}

func randNumeric(n int) string {
	const digits = "0123456789"
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			out[i] = '0'
			continue
		}
		out[i] = digits[idx.Int64()]
	}
	return string(out)
}
