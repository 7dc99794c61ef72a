package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bloomcart/internal/authz"
	"github.com/bloomcart/internal/cache"
	"github.com/bloomcart/internal/config"
	adminhandlers "github.com/bloomcart/internal/http/handlers/admin"
	publichandlers "github.com/bloomcart/internal/http/handlers/public"
	"github.com/bloomcart/internal/http/response"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bc"
	}
	redisClient := cache.Client()
	authRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:auth", redisPrefix),
		WindowSeconds: cfg.Security.AuthRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.AuthRateLimit.MaxAttempts,
		Message:       "too many auth attempts",
	}
	contactRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:contact", redisPrefix),
		WindowSeconds: cfg.Security.AuthRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.AuthRateLimit.MaxAttempts,
		Message:       "too many submissions",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的媒体）
	r.Static(cfg.Storage.PublicBaseURL, cfg.Storage.BaseDir)

	identityOnly := IdentityTokenMiddleware(c.IdentityVerifier)
	userAuth := []gin.HandlerFunc{identityOnly, UserResolveMiddleware(c.AuthService)}

	// API 路由组
	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/blogs", publicHandler.GetBlogs)
		api.GET("/blogs/featured", publicHandler.GetFeaturedBlogs)
		api.GET("/blogs/popular", publicHandler.GetPopularBlogs)
		api.GET("/blogs/:id", publicHandler.GetBlog)
		api.GET("/categories", publicHandler.GetCategories)
		api.GET("/categories/featured", publicHandler.GetFeaturedCategories)
		api.GET("/categories/popular", publicHandler.GetPopularCategories)
		api.GET("/topics", publicHandler.GetTopics)
		api.GET("/authors", publicHandler.GetAuthors)
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/products/:id/reviews", publicHandler.GetProductReviews)
		api.GET("/coupons", publicHandler.GetActiveCoupons)
		api.GET("/captcha", publicHandler.GetImageCaptcha)
		api.POST("/contact", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.SubmitContact)

		// 用户认证接口（仅要求合法 ID Token，档案可尚未注册）
		auth := api.Group("/auth")
		auth.Use(identityOnly)
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, authRule, KeyByIP), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, authRule, KeyByIP), publicHandler.Login)
		}

		// 用户接口（需本地档案）
		user := api.Group("")
		user.Use(userAuth...)
		{
			user.PATCH("/user/profile", publicHandler.UpdateProfile)
			user.DELETE("/user", publicHandler.DeleteAccount)
			user.GET("/user/reviews", publicHandler.GetMyReviews)
			user.GET("/user/favorites", publicHandler.GetMyFavoriteBlogs)

			user.GET("/addresses", publicHandler.GetAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.PATCH("/addresses/:id/default", publicHandler.SetDefaultAddress)

			user.GET("/cart", publicHandler.GetCart)
			user.PUT("/cart/items", publicHandler.UpsertCartLine)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/toggle", publicHandler.ToggleWishlist)

			user.POST("/blogs/:id/favorite", publicHandler.AddFavorite)
			user.DELETE("/blogs/:id/favorite", publicHandler.RemoveFavorite)

			user.POST("/orders", publicHandler.CreateOrder)
			user.POST("/orders/preview-coupon", publicHandler.PreviewCoupon)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/payments/verify", publicHandler.VerifyPayment)

			user.POST("/reviews", publicHandler.CreateReview)
		}

		// 管理员接口
		admin := api.Group("/admin")
		admin.Use(userAuth...)
		admin.Use(AdminRBACMiddleware(c.AuthzService))
		{
			// 作者管理
			admin.GET("/authors", adminHandler.GetAdminAuthors)
			admin.GET("/authors/:id", adminHandler.GetAdminAuthor)
			admin.POST("/authors", adminHandler.CreateAuthor)
			admin.PUT("/authors/:id", adminHandler.UpdateAuthor)
			admin.PATCH("/authors/:id/toggle", adminHandler.ToggleAuthorStatus)
			admin.DELETE("/authors/:id", adminHandler.DeleteAuthor)

			// 博客分类管理
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.GET("/categories/:id", adminHandler.GetAdminCategory)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.PATCH("/categories/:id/toggle", adminHandler.ToggleCategoryStatus)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 话题管理
			admin.GET("/topics", adminHandler.GetAdminTopics)
			admin.GET("/topics/:id", adminHandler.GetAdminTopic)
			admin.POST("/topics", adminHandler.CreateTopic)
			admin.PUT("/topics/:id", adminHandler.UpdateTopic)
			admin.PATCH("/topics/:id/toggle", adminHandler.ToggleTopicStatus)
			admin.DELETE("/topics/:id", adminHandler.DeleteTopic)

			// 博客管理
			admin.GET("/blogs", adminHandler.GetAdminBlogs)
			admin.GET("/blogs/:id", adminHandler.GetAdminBlog)
			admin.POST("/blogs", adminHandler.CreateBlog)
			admin.PUT("/blogs/:id", adminHandler.UpdateBlog)
			admin.PATCH("/blogs/:id/toggle", adminHandler.ToggleBlogStatus)
			admin.PATCH("/blogs/:id/toggle-featured", adminHandler.ToggleBlogFeatured)
			admin.PATCH("/blogs/:id/toggle-popular", adminHandler.ToggleBlogPopular)
			admin.DELETE("/blogs/:id", adminHandler.DeleteBlog)

			// 商品分类管理
			admin.GET("/product-categories", adminHandler.GetAdminProductCategories)
			admin.GET("/product-categories/:id", adminHandler.GetAdminProductCategory)
			admin.POST("/product-categories", adminHandler.CreateProductCategory)
			admin.PUT("/product-categories/:id", adminHandler.UpdateProductCategory)
			admin.PATCH("/product-categories/:id/toggle", adminHandler.ToggleProductCategoryStatus)
			admin.DELETE("/product-categories/:id", adminHandler.DeleteProductCategory)

			// 商品管理
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/products/:id", adminHandler.GetAdminProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.PATCH("/products/:id/toggle", adminHandler.ToggleProductStatus)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 优惠券管理
			admin.GET("/coupons", adminHandler.GetAdminCoupons)
			admin.GET("/coupons/:id", adminHandler.GetAdminCoupon)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.PATCH("/coupons/:id/toggle", adminHandler.ToggleCouponStatus)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

			// 评价与留言
			admin.GET("/reviews", adminHandler.GetAdminReviews)
			admin.PATCH("/reviews/:id/status", adminHandler.UpdateReviewStatus)
			admin.DELETE("/reviews/:id", adminHandler.DeleteReview)
			admin.GET("/contacts", adminHandler.GetAdminContacts)
			admin.DELETE("/contacts/:id", adminHandler.DeleteContact)

			// 用户管理
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.GET("/users/:id", adminHandler.GetAdminUser)
			admin.PUT("/users/:id/block-status", adminHandler.UpdateUserBlockStatus)

			// 订单管理
			admin.GET("/orders", adminHandler.GetAdminOrders)
			admin.GET("/orders/:id", adminHandler.GetAdminOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			// 统计
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/stats/revenue", adminHandler.GetRevenueStats)
			admin.GET("/stats/orders-by-status", adminHandler.GetOrdersByStatus)

			// 文件上传
			admin.POST("/upload", adminHandler.UploadFile)

			// 权限管理
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/users/:id/roles", adminHandler.GetAuthzUserRoles)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetAuthzUserRoles)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
