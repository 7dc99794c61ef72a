package queue

import (
	"encoding/json"

	"github.com/bloomcart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPaidNotify 支付成功通知任务
	TaskOrderPaidNotify = constants.TaskOrderPaidNotify
	// TaskMediaCleanup 存储对象清理任务
	TaskMediaCleanup = constants.TaskMediaCleanup
)

// OrderPaidNotifyPayload 支付成功通知任务载荷
type OrderPaidNotifyPayload struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	UserID    uint   `json:"user_id"`
	PaymentID string `json:"payment_id"`
}

// MediaCleanupPayload 存储对象清理任务载荷
type MediaCleanupPayload struct {
	Keys []string `json:"keys"`
}

// NewOrderPaidNotifyTask 创建支付成功通知任务
func NewOrderPaidNotifyTask(payload OrderPaidNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaidNotify, body), nil
}

// NewMediaCleanupTask 创建存储对象清理任务
func NewMediaCleanupTask(payload MediaCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMediaCleanup, body), nil
}
