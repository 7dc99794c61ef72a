package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, code, discountType, value, maxDiscount, minOrder, status string) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: models.NewMoneyFromDecimal(decimal.RequireFromString(value)),
		MaxDiscount:   models.NewMoneyFromDecimal(decimal.RequireFromString(maxDiscount)),
		MinOrderValue: models.NewMoneyFromDecimal(decimal.RequireFromString(minOrder)),
		Status:        status,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	return models.NewMoneyFromDecimal(decimal.RequireFromString(value))
}

func TestApplyCouponPercent(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "WELCOME10", constants.CouponTypePercent, "10", "60", "100", constants.CouponStatusActive)

	discount, coupon, err := svc.ApplyCoupon(money(t, "600"), "WELCOME10")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("expected discount 60, got %s", discount.String())
	}
	if coupon == nil || coupon.Code != "WELCOME10" {
		t.Fatalf("expected coupon WELCOME10, got %+v", coupon)
	}
}

func TestApplyCouponCodeNormalized(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "WELCOME10", constants.CouponTypePercent, "10", "0", "0", constants.CouponStatusActive)

	discount, _, err := svc.ApplyCoupon(money(t, "200"), "  welcome10 ")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected discount 20, got %s", discount.String())
	}
}

func TestApplyCouponClampBeforeRound(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	// 10% of 199.99 = 19.999：先按上限 19.99 封顶再舍入，而不是先舍成 20.00
	createTestCoupon(t, db, "CAP", constants.CouponTypePercent, "10", "19.99", "0", constants.CouponStatusActive)

	discount, _, err := svc.ApplyCoupon(money(t, "199.99"), "CAP")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("expected discount 19.99, got %s", discount.String())
	}
}

func TestApplyCouponRounding(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "PCT15", constants.CouponTypePercent, "15", "0", "0", constants.CouponStatusActive)

	// 15% of 133.33 = 19.9995，未封顶时按 2 位小数舍入
	discount, _, err := svc.ApplyCoupon(money(t, "133.33"), "PCT15")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected discount 20, got %s", discount.String())
	}
}

func TestApplyCouponFlat(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "FLAT50", constants.CouponTypeFlat, "50", "0", "500", constants.CouponStatusActive)

	discount, _, err := svc.ApplyCoupon(money(t, "500"), "FLAT50")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected discount 50, got %s", discount.String())
	}
}

func TestApplyCouponFlatClampedToSubtotal(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "FLAT50", constants.CouponTypeFlat, "50", "0", "0", constants.CouponStatusActive)

	discount, _, err := svc.ApplyCoupon(money(t, "30"), "FLAT50")
	if err != nil {
		t.Fatalf("apply coupon failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.RequireFromString("30")) {
		t.Fatalf("expected discount clamped to subtotal 30, got %s", discount.String())
	}
}

func TestApplyCouponMinOrderValue(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "WELCOME10", constants.CouponTypePercent, "10", "60", "100", constants.CouponStatusActive)

	if _, _, err := svc.ApplyCoupon(money(t, "99.99"), "WELCOME10"); !errors.Is(err, ErrCouponMinOrderValue) {
		t.Fatalf("expected ErrCouponMinOrderValue, got %v", err)
	}
}

func TestApplyCouponInactive(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, "PAUSED", constants.CouponTypeFlat, "10", "0", "0", constants.CouponStatusInactive)

	if _, _, err := svc.ApplyCoupon(money(t, "100"), "PAUSED"); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got %v", err)
	}
}

func TestApplyCouponNotFound(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	if _, _, err := svc.ApplyCoupon(money(t, "100"), "NOPE"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
	if _, _, err := svc.ApplyCoupon(money(t, "100"), "   "); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected ErrCouponInvalid for blank code, got %v", err)
	}
}
