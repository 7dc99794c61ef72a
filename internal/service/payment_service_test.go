package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/payment/razorpay"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPaymentServiceTest(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:payment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	svc := NewPaymentService(
		repository.NewOrderRepository(db),
		queueClient,
		&razorpay.Config{KeyID: "key_id", KeySecret: "key_secret"},
	)
	return svc, db
}

func createPendingOrder(t *testing.T, db *gorm.DB, userID uint, gatewayOrderID string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:        fmt.Sprintf("BC-PAY-%s", gatewayOrderID),
		UserID:         userID,
		Subtotal:       models.NewMoneyFromDecimal(decimal.RequireFromString("600")),
		TotalAmount:    models.NewMoneyFromDecimal(decimal.RequireFromString("540")),
		Status:         constants.OrderStatusPending,
		PaymentStatus:  constants.PaymentStatusPending,
		GatewayOrderID: gatewayOrderID,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestVerifyPaymentSuccess(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := createPendingOrder(t, db, 1, "order_gw_1")

	signature := razorpay.SignPayload("key_secret", "order_gw_1", "pay_1")
	verified, err := svc.VerifyPayment(VerifyPaymentInput{
		UserID:           1,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		Signature:        signature,
	})
	if err != nil {
		t.Fatalf("verify payment failed: %v", err)
	}
	if verified.PaymentStatus != constants.PaymentStatusPaid || verified.Status != constants.OrderStatusConfirmed {
		t.Fatalf("unexpected order state: %s/%s", verified.Status, verified.PaymentStatus)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected payment status paid, got %s", stored.PaymentStatus)
	}
	if stored.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected status confirmed, got %s", stored.Status)
	}
	if stored.GatewayPaymentID != "pay_1" {
		t.Fatalf("expected gateway payment id persisted, got %q", stored.GatewayPaymentID)
	}
	if stored.PaymentDate == nil {
		t.Fatal("expected payment date set")
	}
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := createPendingOrder(t, db, 1, "order_gw_1")

	_, err := svc.VerifyPayment(VerifyPaymentInput{
		UserID:           1,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		Signature:        "deadbeef",
	})
	if !errors.Is(err, ErrPaymentSignatureMismatch) {
		t.Fatalf("expected ErrPaymentSignatureMismatch, got %v", err)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.PaymentStatus != constants.PaymentStatusPending || stored.Status != constants.OrderStatusPending {
		t.Fatalf("order must stay untouched, got %s/%s", stored.Status, stored.PaymentStatus)
	}
	if stored.GatewayPaymentID != "" {
		t.Fatalf("gateway payment id must stay empty, got %q", stored.GatewayPaymentID)
	}
}

func TestVerifyPaymentAlreadyPaid(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	order := createPendingOrder(t, db, 1, "order_gw_1")
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("payment_status", constants.PaymentStatusPaid).Error; err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	signature := razorpay.SignPayload("key_secret", "order_gw_1", "pay_1")
	_, err := svc.VerifyPayment(VerifyPaymentInput{
		UserID:           1,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		Signature:        signature,
	})
	if !errors.Is(err, ErrPaymentAlreadyPaid) {
		t.Fatalf("expected ErrPaymentAlreadyPaid, got %v", err)
	}
}

func TestVerifyPaymentOrderNotFound(t *testing.T) {
	svc, db := setupPaymentServiceTest(t)
	createPendingOrder(t, db, 1, "order_gw_1")

	signature := razorpay.SignPayload("key_secret", "order_gw_x", "pay_1")
	if _, err := svc.VerifyPayment(VerifyPaymentInput{
		UserID:           1,
		GatewayOrderID:   "order_gw_x",
		GatewayPaymentID: "pay_1",
		Signature:        signature,
	}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for unknown gateway order, got %v", err)
	}

	// 其他用户的订单不可代为确认
	signature = razorpay.SignPayload("key_secret", "order_gw_1", "pay_1")
	if _, err := svc.VerifyPayment(VerifyPaymentInput{
		UserID:           2,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		Signature:        signature,
	}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for another user's order, got %v", err)
	}
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	svc, _ := setupPaymentServiceTest(t)
	if _, err := svc.VerifyPayment(VerifyPaymentInput{GatewayOrderID: "order_gw_1"}); !errors.Is(err, ErrPaymentSignatureMismatch) {
		t.Fatalf("expected ErrPaymentSignatureMismatch for missing fields, got %v", err)
	}
}
