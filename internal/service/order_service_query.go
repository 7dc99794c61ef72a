package service

import (
	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"

	"github.com/shopspring/decimal"
)

// OrderDetail 订单详情，订单项附带解析后的价格档位
type OrderDetail struct {
	Order *models.Order     `json:"order"`
	Items []OrderDetailItem `json:"items"`
}

// OrderDetailItem 订单项详情
type OrderDetailItem struct {
	Item          models.OrderItem `json:"item"`
	Package       models.Package   `json:"package"`
	QuantityLabel string           `json:"quantity_label"`
	MatchReason   string           `json:"match_reason"`
}

// buildOrderDetail 为订单的每个订单项解析其价格档位
func (s *OrderService) buildOrderDetail(order *models.Order) (*OrderDetail, error) {
	detail := &OrderDetail{
		Order: order,
		Items: make([]OrderDetailItem, 0, len(order.Items)),
	}
	products := make(map[uint]*models.Product, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		product, ok := products[item.ProductID]
		if !ok {
			loaded, err := s.productRepo.GetByID(item.ProductID, false)
			if err != nil {
				return nil, err
			}
			product = loaded
			products[item.ProductID] = product
		}
		pkg, label, reason := resolveItemPackage(item, product)
		detail.Items = append(detail.Items, OrderDetailItem{
			Item:          *item,
			Package:       pkg,
			QuantityLabel: label,
			MatchReason:   reason,
		})
	}
	return detail, nil
}

// priceMatchTolerance 按价格回退匹配时允许的偏差
var priceMatchTolerance = decimal.New(1, -2)

// resolveItemPackage 还原订单项当时购买的价格档位。
// 带快照的订单项直接使用快照；历史数据按索引、价格逐级回退匹配。
func resolveItemPackage(item *models.OrderItem, product *models.Product) (models.Package, string, string) {
	if item.HasSnapshot() {
		return models.Package{
			Name:           item.PackageName,
			BasePrice:      item.BasePrice,
			SellPrice:      item.UnitPrice,
			DiscountType:   item.DiscountType,
			DiscountAmount: item.DiscountValue,
		}, item.QuantityLabel, constants.MatchReasonSnapshot
	}

	if product != nil && len(product.QuantityDetails) > 0 {
		// 1. 两个索引都仍然有效，直接取当前档位（售价可能已变动）
		if pkg := product.PackageAt(item.QuantityIndex, item.PackageIndex); pkg != nil {
			return *pkg, product.QuantityDetails[item.QuantityIndex].Quantity, constants.MatchReasonExactIndex
		}

		// 2. 规格索引有效但价格索引越界，压回该规格的第 0 档
		if item.QuantityIndex >= 0 && item.QuantityIndex < len(product.QuantityDetails) {
			tier := product.QuantityDetails[item.QuantityIndex]
			if len(tier.Packages) > 0 {
				return tier.Packages[0], tier.Quantity, constants.MatchReasonClampedPackage
			}
		}

		// 3. 按成交单价扫描，售价或原价偏差在 0.01 内即命中
		unit := historicalUnitPrice(item)
		for _, detail := range product.QuantityDetails {
			for _, pkg := range detail.Packages {
				if priceWithin(pkg.SellPrice, unit) || priceWithin(pkg.BasePrice, unit) {
					return pkg, detail.Quantity, constants.MatchReasonPriceMatch
				}
			}
		}

		// 4. 取第一个可用档位
		for _, detail := range product.QuantityDetails {
			if len(detail.Packages) > 0 {
				return detail.Packages[0], detail.Quantity, constants.MatchReasonFirstAvailable
			}
		}
	}

	// 5. 由订单项自身价格合成档位
	return models.Package{
		BasePrice: item.UnitPrice,
		SellPrice: item.UnitPrice,
	}, "", constants.MatchReasonSynthesized
}

// historicalUnitPrice 反推订单项的成交单价，行小计除以数量；数量为 0 时退回单价字段
func historicalUnitPrice(item *models.OrderItem) decimal.Decimal {
	if item.Quantity > 0 {
		return item.TotalPrice.Decimal.Div(decimal.NewFromInt(int64(item.Quantity)))
	}
	return item.UnitPrice.Decimal
}

func priceWithin(price models.Money, target decimal.Decimal) bool {
	return price.Decimal.Sub(target).Abs().LessThanOrEqual(priceMatchTolerance)
}
