package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/provider"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB, string) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	baseDir := t.TempDir()
	container := &provider.Container{
		OrderRepo: repository.NewOrderRepository(db),
		UserRepo:  repository.NewUserRepository(db),
		Storage:   storage.NewLocalStorage(baseDir, "http://cdn.test/media"),
	}
	return NewConsumer(container), db, baseDir
}

func TestHandleOrderPaidNotify(t *testing.T) {
	consumer, db, _ := setupConsumerTest(t)

	user := models.User{ProviderUID: "uid-1", Email: "maya@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := models.Order{
		OrderNo:     "BC-WK-1",
		UserID:      user.ID,
		Status:      constants.OrderStatusConfirmed,
		TotalAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("540")),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderPaidNotifyTask(queue.OrderPaidNotifyPayload{
		OrderID:   order.ID,
		OrderNo:   order.OrderNo,
		UserID:    user.ID,
		PaymentID: "pay_1",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderPaidNotify(context.Background(), task); err != nil {
		t.Fatalf("handle order paid notify failed: %v", err)
	}
}

func TestHandleOrderPaidNotifySkips(t *testing.T) {
	consumer, _, _ := setupConsumerTest(t)

	// 订单不存在按跳过处理，不触发重试
	task, err := queue.NewOrderPaidNotifyTask(queue.OrderPaidNotifyPayload{OrderID: 9999})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderPaidNotify(context.Background(), task); err != nil {
		t.Fatalf("missing order must be skipped, got %v", err)
	}

	// 非法 payload 返回错误
	bad := asynq.NewTask(constants.TaskOrderPaidNotify, []byte("{not json"))
	if err := consumer.handleOrderPaidNotify(context.Background(), bad); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestHandleMediaCleanup(t *testing.T) {
	consumer, _, baseDir := setupConsumerTest(t)

	key := "blogs/thumb_1.jpg"
	path := filepath.Join(baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}

	task, err := queue.NewMediaCleanupTask(queue.MediaCleanupPayload{
		Keys: []string{key, "blogs/missing.jpg", ""},
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleMediaCleanup(context.Background(), task); err != nil {
		t.Fatalf("handle media cleanup failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}
}

func TestRegisterNilSafe(t *testing.T) {
	consumer, _, _ := setupConsumerTest(t)
	consumer.Register(nil)

	var nilConsumer *Consumer
	nilConsumer.Register(asynq.NewServeMux())
}
