package worker

import (
	"context"
	"encoding/json"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/provider"
	"github.com/bloomcart/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(constants.TaskOrderPaidNotify, c.handleOrderPaidNotify)
	mux.HandleFunc(constants.TaskMediaCleanup, c.handleMediaCleanup)
}

func (c *Consumer) handleOrderPaidNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_paid_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPaidNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_paid_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_paid_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID, false)
	if err != nil {
		logger.Warnw("worker_order_paid_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_paid_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_paid_notify_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_order_paid_notify_skip_user_not_found", "order_id", order.ID, "user_id", order.UserID)
		return nil
	}
	logger.Infow("order_paid_notify",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", user.ID,
		"user_email", user.Email,
		"payment_id", payload.PaymentID,
		"total_amount", order.TotalAmount.String(),
	)
	return nil
}

func (c *Consumer) handleMediaCleanup(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_media_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MediaCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_media_cleanup_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.Keys) == 0 {
		logger.Debugw("worker_media_cleanup_skip_empty_keys")
		return nil
	}
	if c.Storage == nil {
		logger.Warnw("worker_media_cleanup_skip_storage_nil", "keys", len(payload.Keys))
		return nil
	}
	for _, key := range payload.Keys {
		if key == "" {
			continue
		}
		if err := c.Storage.DeleteImage(ctx, key); err != nil {
			logger.Warnw("worker_media_cleanup_delete_failed", "key", key, "error", err)
			continue
		}
		logger.Debugw("worker_media_cleanup_deleted", "key", key)
	}
	return nil
}
