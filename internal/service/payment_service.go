package service

import (
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/payment/razorpay"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
)

// PaymentService 支付回验服务
type PaymentService struct {
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
	gatewayCfg  *razorpay.Config
}

// NewPaymentService 创建支付回验服务
func NewPaymentService(orderRepo repository.OrderRepository, queueClient *queue.Client, gatewayCfg *razorpay.Config) *PaymentService {
	return &PaymentService{
		orderRepo:   orderRepo,
		queueClient: queueClient,
		gatewayCfg:  gatewayCfg,
	}
}

// VerifyPaymentInput 支付验签输入
type VerifyPaymentInput struct {
	UserID           uint
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// VerifyPayment 校验网关回传签名并置订单为已支付。
// 签名不匹配时订单不做任何变更。
func (s *PaymentService) VerifyPayment(input VerifyPaymentInput) (*models.Order, error) {
	if input.GatewayOrderID == "" || input.GatewayPaymentID == "" || input.Signature == "" {
		return nil, ErrPaymentSignatureMismatch
	}

	order, err := s.orderRepo.GetByGatewayOrderID(input.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (input.UserID != 0 && order.UserID != input.UserID) {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadyPaid
	}

	if err := razorpay.VerifySignature(s.gatewayCfg.KeySecret, input.GatewayOrderID, input.GatewayPaymentID, input.Signature); err != nil {
		logger.Warnw("payment_signature_mismatch",
			"order_no", order.OrderNo,
			"gateway_order_id", input.GatewayOrderID,
			"gateway_payment_id", input.GatewayPaymentID,
		)
		return nil, ErrPaymentSignatureMismatch
	}

	paidAt := time.Now()
	if err := s.orderRepo.MarkPaid(order.ID, input.GatewayPaymentID, input.Signature, paidAt); err != nil {
		return nil, ErrOrderUpdateFailed
	}

	order.PaymentStatus = constants.PaymentStatusPaid
	order.Status = constants.OrderStatusConfirmed
	order.GatewayPaymentID = input.GatewayPaymentID
	order.GatewaySignature = input.Signature
	order.PaymentDate = &paidAt

	if err := s.queueClient.EnqueueOrderPaidNotify(queue.OrderPaidNotifyPayload{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		UserID:    order.UserID,
		PaymentID: input.GatewayPaymentID,
	}); err != nil {
		logger.Errorw("order_paid_notify_enqueue_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}

	logger.Infow("order_paid",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"gateway_payment_id", input.GatewayPaymentID,
	)
	return order, nil
}
