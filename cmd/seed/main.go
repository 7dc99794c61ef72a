package main

import (
	"github.com/bloomcart/internal/config"
	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 博客分类
	categories := []models.Category{
		{Name: "Gardening", Status: constants.StatusActive, Featured: true, SortOrder: 10},
		{Name: "Recipes", Status: constants.StatusActive, Popular: true, SortOrder: 20},
		{Name: "Wellness", Status: constants.StatusActive, SortOrder: 30},
	}
	for _, category := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", category.Name, err)
			} else {
				stdLog.Printf("Created category: %s", category.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", category.Name)
		}
	}

	// 作者
	authors := []models.Author{
		{Name: "Maya Fernandes", InstagramHandle: "maya.blooms", Description: "Urban gardener and recipe tinkerer.", Status: constants.StatusActive, SortOrder: 10},
		{Name: "Tom Okafor", InstagramHandle: "tom.grows", Description: "Soil nerd. Writes about composting.", Status: constants.StatusActive, SortOrder: 20},
	}
	for _, author := range authors {
		var existing models.Author
		if err := models.DB.Where("name = ?", author.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&author).Error; err != nil {
				stdLog.Printf("Failed to create author %s: %v", author.Name, err)
			} else {
				stdLog.Printf("Created author: %s", author.Name)
			}
		} else {
			stdLog.Printf("Author already exists: %s", author.Name)
		}
	}

	// 商品分类
	productCategories := []models.ProductCategory{
		{Name: "Dried Flowers", Status: constants.StatusActive, SortOrder: 10},
		{Name: "Herbal Teas", Status: constants.StatusActive, SortOrder: 20},
		{Name: "Seeds", Status: constants.StatusActive, SortOrder: 30},
	}
	for _, category := range productCategories {
		var existing models.ProductCategory
		if err := models.DB.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("Failed to create product category %s: %v", category.Name, err)
			} else {
				stdLog.Printf("Created product category: %s", category.Name)
			}
		} else {
			stdLog.Printf("Product category already exists: %s", category.Name)
		}
	}

	// 商品（含规格与价格档位）
	products := []models.Product{
		{
			Name:        "Chamomile Loose Tea",
			Description: "Whole-flower chamomile, hand picked and air dried.",
			Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1564894809611-1742fc40ed80?w=800"}),
			QuantityDetails: models.QuantityDetailList{
				{
					Quantity: "100g",
					Packages: []models.Package{
						{
							Name:           "Single pack",
							BasePrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(12.00)),
							SellPrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(9.50)),
							DiscountType:   constants.PackageDiscountFlat,
							DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(2.50)),
						},
					},
				},
				{
					Quantity: "250g",
					Packages: []models.Package{
						{
							Name:           "Family pack",
							BasePrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(25.00)),
							SellPrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(20.00)),
							DiscountType:   constants.PackageDiscountPercent,
							DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
						},
					},
				},
			},
			SortOrder:   10,
			IsPublished: true,
			IsFeatured:  true,
			Status:      constants.StatusActive,
		},
		{
			Name:        "Lavender Bouquet",
			Description: "Dried lavender bundle, keeps its scent for months.",
			Images:      models.StringArray([]string{"https://images.unsplash.com/photo-1499002238440-d264edd596ec?w=800"}),
			QuantityDetails: models.QuantityDetailList{
				{
					Quantity: "1 bundle",
					Packages: []models.Package{
						{
							Name:      "Standard",
							BasePrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
							SellPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
						},
					},
				},
			},
			SortOrder:   20,
			IsPublished: true,
			IsPopular:   true,
			Status:      constants.StatusActive,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 优惠券
	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			DiscountType:  constants.CouponTypePercent,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MaxDiscount:   models.NewMoneyFromDecimal(decimal.NewFromInt(60)),
			MinOrderValue: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			Status:        constants.CouponStatusActive,
		},
		{
			Code:          "FLAT50",
			DiscountType:  constants.CouponTypeFlat,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			MinOrderValue: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			Status:        constants.CouponStatusActive,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	stdLog.Println("Seed finished")
}
