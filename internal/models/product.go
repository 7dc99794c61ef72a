package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// JSON 类型定义，用于存储商品元信息等半结构化内容
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray 字符串数组类型，用于存储 images 等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Package 商品价格档位（嵌套在规格档位下的可购买选项）
type Package struct {
	Name           string `json:"name"`            // 档位名称
	BasePrice      Money  `json:"base_price"`      // 原价
	SellPrice      Money  `json:"sell_price"`      // 售价（不高于原价）
	DiscountType   string `json:"discount_type"`   // 折扣类型（flat/percent）
	DiscountAmount Money  `json:"discount_amount"` // 折扣数值
}

// QuantityDetail 商品规格档位（按数量标签组织的价格档位集合）
type QuantityDetail struct {
	Quantity string    `json:"quantity"` // 数量标签（如 250g / 1kg）
	Packages []Package `json:"packages"` // 价格档位列表
}

// QuantityDetailList 规格档位集合，整体以 JSON 列存储
type QuantityDetailList []QuantityDetail

// Value 实现 driver.Valuer 接口
func (q QuantityDetailList) Value() (driver.Value, error) {
	if q == nil {
		return nil, nil
	}
	return json.Marshal(q)
}

// Scan 实现 sql.Scanner 接口
func (q *QuantityDetailList) Scan(value interface{}) error {
	if value == nil {
		*q = QuantityDetailList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, q)
}

// Product 商品表
type Product struct {
	ID              uint               `gorm:"primarykey" json:"id"`                          // 主键
	Name            string             `gorm:"index;not null" json:"name"`                    // 商品名称
	Description     string             `gorm:"type:text" json:"description"`                  // 商品描述
	Images          StringArray        `gorm:"type:json" json:"images"`                       // 商品图片（存储 URL 列表）
	VideoURL        string             `gorm:"type:varchar(500)" json:"video_url,omitempty"`  // 商品视频（存储 URL）
	QuantityDetails QuantityDetailList `gorm:"type:json" json:"quantity_details"`             // 规格与价格档位
	Metadata        JSON               `gorm:"type:json" json:"metadata,omitempty"`           // 附加元信息
	SortOrder       int                `gorm:"not null;default:100;index" json:"sort_order"`  // 排序权重
	IsPublished     bool               `gorm:"not null;default:false" json:"is_published"`    // 是否上架
	IsPopular       bool               `gorm:"not null;default:false" json:"is_popular"`      // 是否热门
	IsFeatured      bool               `gorm:"not null;default:false" json:"is_featured"`     // 是否推荐
	Status          string             `gorm:"index;default:'active'" json:"status"`          // 状态（active/inactive）
	RatingAvg       float64            `gorm:"not null;default:0" json:"rating_avg"`          // 平均评分（保留 1 位小数）
	RatingCount     int                `gorm:"not null;default:0" json:"rating_count"`        // 评价数
	FavoriteCount   int                `gorm:"not null;default:0" json:"favorite_count"`      // 收藏数
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt       time.Time          `json:"updated_at"`                                    // 更新时间
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`                                // 软删除时间

	Categories []ProductCategory `gorm:"many2many:product_category_links" json:"categories,omitempty"` // 商品分类
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// PackageAt 按档位索引取价格档位，索引越界时返回 nil
func (p *Product) PackageAt(quantityIndex, packageIndex int) *Package {
	if quantityIndex < 0 || quantityIndex >= len(p.QuantityDetails) {
		return nil
	}
	tier := p.QuantityDetails[quantityIndex]
	if packageIndex < 0 || packageIndex >= len(tier.Packages) {
		return nil
	}
	return &tier.Packages[packageIndex]
}
