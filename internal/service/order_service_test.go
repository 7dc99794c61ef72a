package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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

func setupOrderServiceTest(t *testing.T, gatewayURL string) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	couponRepo := repository.NewCouponRepository(db)
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewAddressRepository(db),
		repository.NewCartRepository(db),
		couponRepo,
		NewCouponService(couponRepo),
		queueClient,
		&razorpay.Config{
			KeyID:     "key_id",
			KeySecret: "key_secret",
			Currency:  "INR",
			Endpoint:  gatewayURL,
		},
	)
	return svc, db
}

type gatewayCapture struct {
	LastBody map[string]interface{}
}

// Notes 取最近一次下单请求里的 notes 字段
func (c *gatewayCapture) Notes() map[string]interface{} {
	notes, _ := c.LastBody["notes"].(map[string]interface{})
	return notes
}

func newGatewayStub(t *testing.T) (*httptest.Server, *gatewayCapture) {
	t.Helper()
	capture := &gatewayCapture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		capture.LastBody = body
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_gw_1",
			"amount":   body["amount"],
			"currency": body["currency"],
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	return server, capture
}

func createOrderTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:          id,
		ProviderUID: fmt.Sprintf("uid-%d", id),
		Email:       fmt.Sprintf("user_%d@example.com", id),
		Role:        constants.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func createOrderTestAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:  userID,
		Line:    "12 Petal Street",
		Zipcode: "560001",
		City:    "Bengaluru",
		State:   "Karnataka",
		Label:   constants.AddressLabelHome,
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	return address
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, sellPrice string) *models.Product {
	t.Helper()
	sell := decimal.RequireFromString(sellPrice)
	product := &models.Product{
		Name:        "Chamomile Loose Tea",
		Description: "calming herbal tea",
		QuantityDetails: models.QuantityDetailList{
			{
				Quantity: "100g",
				Packages: []models.Package{
					{
						Name:           "Single pack",
						BasePrice:      models.NewMoneyFromDecimal(sell.Add(decimal.RequireFromString("20"))),
						SellPrice:      models.NewMoneyFromDecimal(sell),
						DiscountType:   constants.PackageDiscountFlat,
						DiscountAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("20")),
					},
				},
			},
		},
		IsPublished: true,
		Status:      constants.StatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCreateOrderWithCoupon(t *testing.T) {
	gateway, capture := newGatewayStub(t)
	defer gateway.Close()
	svc, db := setupOrderServiceTest(t, gateway.URL)

	createOrderTestUser(t, db, 1)
	address := createOrderTestAddress(t, db, 1)
	product := createOrderTestProduct(t, db, "200")
	coupon := createTestCoupon(t, db, "WELCOME10", constants.CouponTypePercent, "10", "60", "100", constants.CouponStatusActive)

	cartLine := models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 3}
	if err := db.Create(&cartLine).Error; err != nil {
		t.Fatalf("seed cart line failed: %v", err)
	}

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:     1,
		AddressID:  address.ID,
		Items:      []CreateOrderLine{{ProductID: product.ID, Quantity: 3}},
		CouponCode: "WELCOME10",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if !order.Subtotal.Decimal.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected subtotal 600, got %s", order.Subtotal.String())
	}
	if !order.DiscountAmount.Decimal.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected discount 60, got %s", order.DiscountAmount.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.RequireFromString("540")) {
		t.Fatalf("expected total 540, got %s", order.TotalAmount.String())
	}
	if order.CouponCode != "WELCOME10" {
		t.Fatalf("expected coupon code on order, got %q", order.CouponCode)
	}
	if order.GatewayOrderID != "order_gw_1" {
		t.Fatalf("expected gateway order id, got %q", order.GatewayOrderID)
	}
	if !strings.HasPrefix(order.OrderNo, "BC") {
		t.Fatalf("unexpected order no %q", order.OrderNo)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.PackageName != "Single pack" || item.QuantityLabel != "100g" {
		t.Fatalf("expected package snapshot on order item, got %+v", item)
	}
	if !item.TotalPrice.Decimal.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected line total 600, got %s", item.TotalPrice.String())
	}

	notes := capture.Notes()
	if notes == nil {
		t.Fatalf("expected notes on gateway order, got body %+v", capture.LastBody)
	}
	if notes["user_id"] != "1" {
		t.Fatalf("expected notes.user_id 1, got %v", notes["user_id"])
	}
	if notes["coupon_code"] != "WELCOME10" {
		t.Fatalf("expected notes.coupon_code WELCOME10, got %v", notes["coupon_code"])
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.UsageCount != 1 {
		t.Fatalf("expected usage count incremented once, got %d", stored.UsageCount)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d lines", cartCount)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer gateway.Close()
	svc, db := setupOrderServiceTest(t, gateway.URL)

	createOrderTestUser(t, db, 1)
	address := createOrderTestAddress(t, db, 1)
	product := createOrderTestProduct(t, db, "200")
	coupon := createTestCoupon(t, db, "WELCOME10", constants.CouponTypePercent, "10", "60", "100", constants.CouponStatusActive)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:     1,
		AddressID:  address.ID,
		Items:      []CreateOrderLine{{ProductID: product.ID, Quantity: 3}},
		CouponCode: "WELCOME10",
	})
	if !errors.Is(err, ErrPaymentGateway) {
		t.Fatalf("expected ErrPaymentGateway, got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order persisted, got %d", orderCount)
	}
	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.UsageCount != 0 {
		t.Fatalf("expected usage count untouched, got %d", stored.UsageCount)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	gateway, _ := newGatewayStub(t)
	defer gateway.Close()
	svc, db := setupOrderServiceTest(t, gateway.URL)

	createOrderTestUser(t, db, 1)
	address := createOrderTestAddress(t, db, 1)
	product := createOrderTestProduct(t, db, "200")

	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: 1, AddressID: address.ID}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected ErrInvalidOrderItem for empty items, got %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:    1,
		AddressID: address.ID + 99,
		Items:     []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:    1,
		AddressID: address.ID,
		Items:     []CreateOrderLine{{ProductID: product.ID, Quantity: 1, PackageIndex: 5}},
	}); !errors.Is(err, ErrPackageInvalid) {
		t.Fatalf("expected ErrPackageInvalid, got %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_published", false).Error; err != nil {
		t.Fatalf("unpublish product failed: %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:    1,
		AddressID: address.ID,
		Items:     []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	}); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
}

func TestPreviewCoupon(t *testing.T) {
	svc, db := setupOrderServiceTest(t, "")

	product := createOrderTestProduct(t, db, "200")
	coupon := createTestCoupon(t, db, "WELCOME10", constants.CouponTypePercent, "10", "60", "100", constants.CouponStatusActive)

	preview, err := svc.PreviewCoupon([]CreateOrderLine{{ProductID: product.ID, Quantity: 3}}, "WELCOME10")
	if err != nil {
		t.Fatalf("preview coupon failed: %v", err)
	}
	if !preview.Subtotal.Decimal.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected subtotal 600, got %s", preview.Subtotal.String())
	}
	if !preview.DiscountAmount.Decimal.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected discount 60, got %s", preview.DiscountAmount.String())
	}
	if !preview.TotalAmount.Decimal.Equal(decimal.RequireFromString("540")) {
		t.Fatalf("expected total 540, got %s", preview.TotalAmount.String())
	}
	if preview.CouponCode != "WELCOME10" {
		t.Fatalf("expected coupon code in preview, got %q", preview.CouponCode)
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.UsageCount != 0 {
		t.Fatalf("preview must not increment usage count, got %d", stored.UsageCount)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, db := setupOrderServiceTest(t, "")

	cases := []struct {
		from   string
		to     string
		wantOK bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusShipped, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusConfirmed, false},
	}
	for i, tc := range cases {
		order := models.Order{
			OrderNo: fmt.Sprintf("BC-TEST-%d", i),
			UserID:  1,
			Status:  tc.from,
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		updated, err := svc.UpdateStatus(order.ID, tc.to)
		if tc.wantOK {
			if err != nil {
				t.Fatalf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
			}
			if updated.Status != tc.to {
				t.Fatalf("expected status %s, got %s", tc.to, updated.Status)
			}
			continue
		}
		if !errors.Is(err, ErrOrderStatusInvalid) {
			t.Fatalf("%s -> %s should be rejected, got %v", tc.from, tc.to, err)
		}
	}

	if _, err := svc.UpdateStatus(9999, constants.OrderStatusConfirmed); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestResolveItemPackage(t *testing.T) {
	product := &models.Product{
		QuantityDetails: models.QuantityDetailList{
			{
				Quantity: "100g",
				Packages: []models.Package{
					{
						Name:      "Single pack",
						BasePrice: models.NewMoneyFromDecimal(decimal.RequireFromString("12")),
						SellPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("9.5")),
					},
				},
			},
			{
				Quantity: "250g",
				Packages: []models.Package{
					{
						Name:      "Family pack",
						BasePrice: models.NewMoneyFromDecimal(decimal.RequireFromString("25")),
						SellPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("20")),
					},
				},
			},
		},
	}

	// 带快照的订单项优先使用快照，不看商品现价
	snapshotItem := &models.OrderItem{
		PackageName:   "Old pack",
		QuantityLabel: "500g",
		UnitPrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("7")),
		BasePrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("8")),
	}
	pkg, label, reason := resolveItemPackage(snapshotItem, product)
	if reason != constants.MatchReasonSnapshot {
		t.Fatalf("expected snapshot reason, got %s", reason)
	}
	if pkg.Name != "Old pack" || label != "500g" {
		t.Fatalf("expected snapshot package, got %+v label %s", pkg, label)
	}

	// 两个索引都有效时直接命中，即使售价已变动
	exactItem := &models.OrderItem{
		QuantityIndex: 1,
		PackageIndex:  0,
		UnitPrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("15")),
	}
	pkg, label, reason = resolveItemPackage(exactItem, product)
	if reason != constants.MatchReasonExactIndex || pkg.Name != "Family pack" || label != "250g" {
		t.Fatalf("expected exact index match, got %s %+v %s", reason, pkg, label)
	}

	// 规格索引有效但价格索引越界，压回该规格第 0 档
	clampedItem := &models.OrderItem{
		QuantityIndex: 0,
		PackageIndex:  7,
		UnitPrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("20")),
	}
	pkg, label, reason = resolveItemPackage(clampedItem, product)
	if reason != constants.MatchReasonClampedPackage || pkg.Name != "Single pack" || label != "100g" {
		t.Fatalf("expected clamped package match, got %s %+v %s", reason, pkg, label)
	}

	// 规格索引也越界时按成交单价扫描，偏差 0.01 内命中售价
	priceItem := &models.OrderItem{
		QuantityIndex: 9,
		PackageIndex:  0,
		Quantity:      2,
		UnitPrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		TotalPrice:    models.NewMoneyFromDecimal(decimal.RequireFromString("39.98")),
	}
	pkg, label, reason = resolveItemPackage(priceItem, product)
	if reason != constants.MatchReasonPriceMatch || pkg.Name != "Family pack" || label != "250g" {
		t.Fatalf("expected price match, got %s %+v %s", reason, pkg, label)
	}

	// 售价对不上时原价在偏差内同样命中
	basePriceItem := &models.OrderItem{
		QuantityIndex: 9,
		PackageIndex:  0,
		UnitPrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("11.99")),
	}
	pkg, _, reason = resolveItemPackage(basePriceItem, product)
	if reason != constants.MatchReasonPriceMatch || pkg.Name != "Single pack" {
		t.Fatalf("expected base price match, got %s %+v", reason, pkg)
	}

	// 没有任何价格匹配时取第一个可用档位
	fallbackItem := &models.OrderItem{
		QuantityIndex: 9,
		PackageIndex:  0,
		UnitPrice:     models.NewMoneyFromDecimal(decimal.RequireFromString("7")),
	}
	pkg, label, reason = resolveItemPackage(fallbackItem, product)
	if reason != constants.MatchReasonFirstAvailable || pkg.Name != "Single pack" || label != "100g" {
		t.Fatalf("expected first available, got %s %+v %s", reason, pkg, label)
	}

	// 商品已删除时由订单项价格合成档位
	pkg, label, reason = resolveItemPackage(fallbackItem, nil)
	if reason != constants.MatchReasonSynthesized || label != "" {
		t.Fatalf("expected synthesized, got %s %s", reason, label)
	}
	if !pkg.SellPrice.Decimal.Equal(decimal.RequireFromString("7")) {
		t.Fatalf("expected synthesized price 7, got %s", pkg.SellPrice.String())
	}
}
