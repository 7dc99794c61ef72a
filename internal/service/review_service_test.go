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

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
	), db
}

func createReviewTestProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        "Lavender Bouquet",
		IsPublished: true,
		Status:      constants.StatusActive,
		QuantityDetails: models.QuantityDetailList{
			{
				Quantity: "1 bundle",
				Packages: []models.Package{{
					Name:      "Standard",
					BasePrice: models.NewMoneyFromDecimal(decimal.RequireFromString("18")),
					SellPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("18")),
				}},
			},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createDeliveredOrder(t *testing.T, db *gorm.DB, userID, productID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo: fmt.Sprintf("BC-RV-%d-%d", userID, productID),
		UserID:  userID,
		Status:  constants.OrderStatusDelivered,
		Items: []models.OrderItem{{
			ProductID: productID,
			Quantity:  1,
			UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("18")),
		}},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestReviewCreateAndAggregate(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db)
	order1 := createDeliveredOrder(t, db, 1, product.ID)
	order2 := createDeliveredOrder(t, db, 2, product.ID)

	if _, err := svc.Create(CreateReviewInput{
		UserID:    1,
		ProductID: product.ID,
		OrderID:   order1.ID,
		Rating:    5,
		Message:   "beautiful and fresh flowers",
	}); err != nil {
		t.Fatalf("create first review failed: %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{
		UserID:    2,
		ProductID: product.ID,
		OrderID:   order2.ID,
		Rating:    4,
		Message:   "arrived a day late but lovely",
	}); err != nil {
		t.Fatalf("create second review failed: %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.RatingAvg != 4.5 || stored.RatingCount != 2 {
		t.Fatalf("expected rating 4.5/2, got %v/%d", stored.RatingAvg, stored.RatingCount)
	}

	reviews, err := svc.ListByProduct(product.ID, 1, 20, constants.SortNewToOld)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if reviews.Total != 2 || len(reviews.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got total=%d len=%d", reviews.Total, len(reviews.Reviews))
	}
	if reviews.Distribution[5] != 1 || reviews.Distribution[4] != 1 {
		t.Fatalf("unexpected distribution %v", reviews.Distribution)
	}
}

func TestReviewCreateDuplicate(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db)
	order := createDeliveredOrder(t, db, 1, product.ID)

	input := CreateReviewInput{
		UserID:    1,
		ProductID: product.ID,
		OrderID:   order.ID,
		Rating:    5,
		Message:   "beautiful and fresh flowers",
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
}

func TestReviewCreateValidation(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db)
	order := createDeliveredOrder(t, db, 1, product.ID)

	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: order.ID, Rating: 0, Message: "beautiful and fresh flowers",
	}); !errors.Is(err, ErrReviewRatingInvalid) {
		t.Fatalf("expected ErrReviewRatingInvalid for 0, got %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: order.ID, Rating: 6, Message: "beautiful and fresh flowers",
	}); !errors.Is(err, ErrReviewRatingInvalid) {
		t.Fatalf("expected ErrReviewRatingInvalid for 6, got %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: order.ID, Rating: 5, Message: "   nice    ",
	}); !errors.Is(err, ErrReviewMessageTooShort) {
		t.Fatalf("expected ErrReviewMessageTooShort, got %v", err)
	}
}

func TestReviewCreateOrderInvalid(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db)
	other := createReviewTestProduct(t, db)

	// 未送达订单
	pending := &models.Order{
		OrderNo: "BC-RV-PENDING",
		UserID:  1,
		Status:  constants.OrderStatusPending,
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Quantity:  1,
			UnitPrice: models.NewMoneyFromDecimal(decimal.RequireFromString("18")),
		}},
	}
	if err := db.Create(pending).Error; err != nil {
		t.Fatalf("create pending order failed: %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: pending.ID, Rating: 5, Message: "beautiful and fresh flowers",
	}); !errors.Is(err, ErrReviewOrderInvalid) {
		t.Fatalf("expected ErrReviewOrderInvalid for undelivered order, got %v", err)
	}

	// 订单属于其他用户
	delivered := createDeliveredOrder(t, db, 2, product.ID)
	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: delivered.ID, Rating: 5, Message: "beautiful and fresh flowers",
	}); !errors.Is(err, ErrReviewOrderInvalid) {
		t.Fatalf("expected ErrReviewOrderInvalid for foreign order, got %v", err)
	}

	// 订单不含该商品
	mine := createDeliveredOrder(t, db, 1, product.ID)
	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: other.ID, OrderID: mine.ID, Rating: 5, Message: "beautiful and fresh flowers",
	}); !errors.Is(err, ErrReviewOrderInvalid) {
		t.Fatalf("expected ErrReviewOrderInvalid for product not in order, got %v", err)
	}

	// 商品不存在
	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: 9999, OrderID: mine.ID, Rating: 5, Message: "beautiful and fresh flowers",
	}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReviewUpdateStatusReaggregates(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db)
	order1 := createDeliveredOrder(t, db, 1, product.ID)
	order2 := createDeliveredOrder(t, db, 2, product.ID)

	if _, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: order1.ID, Rating: 5, Message: "beautiful and fresh flowers",
	}); err != nil {
		t.Fatalf("create first review failed: %v", err)
	}
	second, err := svc.Create(CreateReviewInput{
		UserID: 2, ProductID: product.ID, OrderID: order2.ID, Rating: 2, Message: "wilted on arrival sadly",
	})
	if err != nil {
		t.Fatalf("create second review failed: %v", err)
	}

	hidden, err := svc.UpdateStatus(second.ID, constants.ReviewStatusHidden)
	if err != nil {
		t.Fatalf("hide review failed: %v", err)
	}
	if hidden.Status != constants.ReviewStatusHidden {
		t.Fatalf("expected hidden status, got %q", hidden.Status)
	}
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.RatingAvg != 5 || stored.RatingCount != 1 {
		t.Fatalf("expected rating 5/1 after hiding, got %v/%d", stored.RatingAvg, stored.RatingCount)
	}

	// 恢复展示后评分重新计入
	if _, err := svc.UpdateStatus(second.ID, "  Active "); err != nil {
		t.Fatalf("restore review failed: %v", err)
	}
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.RatingAvg != 3.5 || stored.RatingCount != 2 {
		t.Fatalf("expected rating 3.5/2 after restore, got %v/%d", stored.RatingAvg, stored.RatingCount)
	}

	// 状态未变化时不触碰评分
	if _, err := svc.UpdateStatus(second.ID, constants.ReviewStatusActive); err != nil {
		t.Fatalf("same-status update failed: %v", err)
	}

	if _, err := svc.UpdateStatus(second.ID, "banned"); !errors.Is(err, ErrReviewStatusInvalid) {
		t.Fatalf("expected ErrReviewStatusInvalid, got %v", err)
	}
	if _, err := svc.UpdateStatus(9999, constants.ReviewStatusHidden); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestReviewDeleteReaggregates(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	product := createReviewTestProduct(t, db)
	order1 := createDeliveredOrder(t, db, 1, product.ID)
	order2 := createDeliveredOrder(t, db, 2, product.ID)

	first, err := svc.Create(CreateReviewInput{
		UserID: 1, ProductID: product.ID, OrderID: order1.ID, Rating: 5, Message: "beautiful and fresh flowers",
	})
	if err != nil {
		t.Fatalf("create first review failed: %v", err)
	}
	second, err := svc.Create(CreateReviewInput{
		UserID: 2, ProductID: product.ID, OrderID: order2.ID, Rating: 2, Message: "wilted on arrival sadly",
	})
	if err != nil {
		t.Fatalf("create second review failed: %v", err)
	}

	if err := svc.Delete(second.ID); err != nil {
		t.Fatalf("delete review failed: %v", err)
	}
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.RatingAvg != 5 || stored.RatingCount != 1 {
		t.Fatalf("expected rating 5/1 after delete, got %v/%d", stored.RatingAvg, stored.RatingCount)
	}

	if err := svc.Delete(first.ID); err != nil {
		t.Fatalf("delete last review failed: %v", err)
	}
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.RatingAvg != 0 || stored.RatingCount != 0 {
		t.Fatalf("expected rating reset after last delete, got %v/%d", stored.RatingAvg, stored.RatingCount)
	}

	if err := svc.Delete(first.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
