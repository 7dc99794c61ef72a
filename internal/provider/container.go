package provider

import (
	"github.com/bloomcart/internal/authz"
	"github.com/bloomcart/internal/cache"
	"github.com/bloomcart/internal/config"
	"github.com/bloomcart/internal/identity"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/payment/razorpay"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/service"
	"github.com/bloomcart/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config           *config.Config
	QueueClient      *queue.Client
	Storage          storage.ObjectStorage
	IdentityVerifier identity.Verifier
	GatewayConfig    *razorpay.Config

	// Repositories
	UserRepo            repository.UserRepository
	AddressRepo         repository.AddressRepository
	AuthorRepo          repository.AuthorRepository
	CategoryRepo        repository.CategoryRepository
	TopicRepo           repository.TopicRepository
	BlogRepo            repository.BlogRepository
	FavoriteRepo        repository.FavoriteRepository
	ProductCategoryRepo repository.ProductCategoryRepository
	ProductRepo         repository.ProductRepository
	CartRepo            repository.CartRepository
	WishlistRepo        repository.WishlistRepository
	CouponRepo          repository.CouponRepository
	OrderRepo           repository.OrderRepository
	ReviewRepo          repository.ReviewRepository
	ContactRepo         repository.ContactRepository

	// Services
	AuthzService           *authz.Service
	AuthService            *service.AuthService
	AddressService         *service.AddressService
	AuthorService          *service.AuthorService
	CategoryService        *service.CategoryService
	TopicService           *service.TopicService
	BlogService            *service.BlogService
	FavoriteService        *service.FavoriteService
	ProductCategoryService *service.ProductCategoryService
	ProductService         *service.ProductService
	CartService            *service.CartService
	WishlistService        *service.WishlistService
	CouponService          *service.CouponService
	CouponAdminService     *service.CouponAdminService
	OrderService           *service.OrderService
	PaymentService         *service.PaymentService
	ReviewService          *service.ReviewService
	ContactService         *service.ContactService
	CaptchaService         *service.CaptchaService
	StatsService           *service.StatsService
	UploadService          *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:           cfg,
		QueueClient:      queueClient,
		Storage:          storage.NewLocalStorage(cfg.Storage.BaseDir, cfg.Storage.PublicBaseURL),
		IdentityVerifier: identity.NewJWTVerifier(cfg.Identity),
		GatewayConfig: &razorpay.Config{
			KeyID:     cfg.Payment.KeyID,
			KeySecret: cfg.Payment.KeySecret,
			Currency:  cfg.Payment.Currency,
			Endpoint:  cfg.Payment.Endpoint,
			TimeoutMS: cfg.Payment.TimeoutMS,
		},
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.AuthorRepo = repository.NewAuthorRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TopicRepo = repository.NewTopicRepository(db)
	c.BlogRepo = repository.NewBlogRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.ProductCategoryRepo = repository.NewProductCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.AuthorService = service.NewAuthorService(c.AuthorRepo, c.BlogRepo, c.QueueClient, c.Storage)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.BlogRepo, c.TopicRepo, c.QueueClient, c.Storage)
	c.TopicService = service.NewTopicService(c.TopicRepo, c.CategoryRepo, c.BlogRepo)
	c.BlogService = service.NewBlogService(c.BlogRepo, c.AuthorRepo, c.CategoryRepo, c.TopicRepo, c.QueueClient, c.Storage)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.BlogRepo)
	c.ProductCategoryService = service.NewProductCategoryService(c.ProductCategoryRepo, c.QueueClient, c.Storage)
	c.ProductService = service.NewProductService(c.ProductRepo, c.ProductCategoryRepo, c.QueueClient, c.Storage)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.AddressRepo, c.CartRepo, c.CouponRepo, c.CouponService, c.QueueClient, c.GatewayConfig)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.QueueClient, c.GatewayConfig)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.OrderRepo)
	c.ContactService = service.NewContactService(c.ContactRepo, c.CaptchaService)
	c.StatsService = service.NewStatsService(c.OrderRepo, c.UserRepo, c.ProductRepo)
	c.UploadService = service.NewUploadService(c.Config, c.Storage)
}
