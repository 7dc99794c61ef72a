package service

import (
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/storage"
)

// enqueueMediaCleanup 将一组公开 URL 还原为存储键并交给清理任务。
// 清理是尽力而为的，入队失败只记日志。
func enqueueMediaCleanup(queueClient *queue.Client, store storage.ObjectStorage, urls ...string) {
	if queueClient == nil || store == nil {
		return
	}
	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		if key := store.ExtractKey(url); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := queueClient.EnqueueMediaCleanup(queue.MediaCleanupPayload{Keys: keys}); err != nil {
		logger.Warnw("media_cleanup_enqueue_failed",
			"keys", keys,
			"error", err,
		)
	}
}
