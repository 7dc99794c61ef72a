package repository

import (
	"errors"
	"time"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	GetByID(id uint, withItems bool) (*models.Order, error)
	GetByIDForUser(id, userID uint, withItems bool) (*models.Order, error)
	GetByGatewayOrderID(gatewayOrderID string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	UpdateStatus(id uint, status string) error
	MarkPaid(id uint, paymentID, signature string, paidAt time.Time) error
	List(filter OrderListFilter) ([]models.Order, int64, error)
	PaidTotals(since *time.Time) (models.Money, int64, error)
	CountByStatus() (map[string]int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// GetByID 根据ID获取订单
func (r *GormOrderRepository) GetByID(id uint, withItems bool) (*models.Order, error) {
	var order models.Order
	query := r.db
	if withItems {
		query = query.Preload("Items").Preload("Address")
	}
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUser 根据ID获取指定用户的订单
func (r *GormOrderRepository) GetByIDForUser(id, userID uint, withItems bool) (*models.Order, error) {
	var order models.Order
	query := r.db.Where("user_id = ?", userID)
	if withItems {
		query = query.Preload("Items").Preload("Address")
	}
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByGatewayOrderID 根据网关订单ID获取订单
func (r *GormOrderRepository) GetByGatewayOrderID(gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("gateway_order_id = ?", gatewayOrderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单（级联写入订单项）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Omit("Items", "Address").Save(order).Error
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

// MarkPaid 标记订单已支付
func (r *GormOrderRepository) MarkPaid(id uint, paymentID, signature string, paidAt time.Time) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status":     "paid",
		"status":             "confirmed",
		"gateway_payment_id": paymentID,
		"gateway_signature":  signature,
		"payment_date":       paidAt,
	}).Error
}

// List 获取订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithItems {
		query = query.Preload("Items").Preload("Address")
	}
	err := applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// PaidTotals 统计已支付订单的总金额与单数（since 为空则不限时间）
func (r *GormOrderRepository) PaidTotals(since *time.Time) (models.Money, int64, error) {
	type row struct {
		Revenue models.Money
		Count   int64
	}
	var result row
	query := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS count").
		Where("payment_status = ?", "paid")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Scan(&result).Error; err != nil {
		return models.Money{}, 0, err
	}
	return result.Revenue, result.Count, nil
}

// CountByStatus 按订单状态分组统计
func (r *GormOrderRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, item := range rows {
		result[item.Status] = item.Count
	}
	return result, nil
}
