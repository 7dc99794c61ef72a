package service

import (
	"context"
	"strings"
	"time"

	"github.com/bloomcart/internal/cache"
	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
)

// StatsService 管理端统计服务
type StatsService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewStatsService 创建管理端统计服务
func NewStatsService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, productRepo repository.ProductRepository) *StatsService {
	return &StatsService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// StatsTotals 总量统计（营收与销量只计已支付订单）
type StatsTotals struct {
	Revenue  models.Money `json:"revenue"`
	Sales    int64        `json:"sales"`
	Users    int64        `json:"users"`
	Products int64        `json:"products"`
}

// RevenueStats 周期营收统计
type RevenueStats struct {
	Period  string       `json:"period"`
	Since   time.Time    `json:"since"`
	Revenue models.Money `json:"revenue"`
	Sales   int64        `json:"sales"`
}

// Totals 获取总量统计，短 TTL 缓存
func (s *StatsService) Totals(ctx context.Context) (*StatsTotals, error) {
	var cached StatsTotals
	if hit, err := cache.GetJSON(ctx, constants.CacheKeyAdminStats, &cached); err == nil && hit {
		return &cached, nil
	}

	revenue, sales, err := s.orderRepo.PaidTotals(nil)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.CountActive()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.CountActive()
	if err != nil {
		return nil, err
	}

	totals := &StatsTotals{
		Revenue:  revenue,
		Sales:    sales,
		Users:    users,
		Products: products,
	}
	_ = cache.SetJSON(ctx, constants.CacheKeyAdminStats, totals, time.Minute)
	return totals, nil
}

// Revenue 获取指定周期的营收统计。
// week 为最近 7 天，month 与 year 从周期起点开始。
func (s *StatsService) Revenue(period string) (*RevenueStats, error) {
	now := time.Now()
	var since time.Time
	normalized := strings.ToLower(strings.TrimSpace(period))
	switch normalized {
	case constants.StatsPeriodWeek, "":
		normalized = constants.StatsPeriodWeek
		since = now.AddDate(0, 0, -7)
	case constants.StatsPeriodMonth:
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case constants.StatsPeriodYear:
		since = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		since = now.AddDate(0, 0, -7)
		normalized = constants.StatsPeriodWeek
	}

	revenue, sales, err := s.orderRepo.PaidTotals(&since)
	if err != nil {
		return nil, err
	}
	return &RevenueStats{
		Period:  normalized,
		Since:   since,
		Revenue: revenue,
		Sales:   sales,
	}, nil
}

// OrdersByStatus 按状态统计订单数
func (s *StatsService) OrdersByStatus() (map[string]int64, error) {
	counts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	for _, status := range []string{
		constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}
