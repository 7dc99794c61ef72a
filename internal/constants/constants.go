package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 支付方式常量
const (
	PaymentMethodGateway = "gateway"
)

// 优惠券折扣类型常量
const (
	CouponTypePercent = "percent"
	CouponTypeFlat    = "flat"
)

// 优惠券状态常量
const (
	CouponStatusActive   = "active"
	CouponStatusInactive = "inactive"
)

// 商品价格档位折扣类型常量
const (
	PackageDiscountFlat    = "flat"
	PackageDiscountPercent = "percent"
)

// 历史订单项档位解析原因常量
const (
	MatchReasonSnapshot       = "snapshot"
	MatchReasonExactIndex     = "exact_index"
	MatchReasonClampedPackage = "clamped_package"
	MatchReasonPriceMatch     = "price_match"
	MatchReasonFirstAvailable = "first_available"
	MatchReasonSynthesized    = "synthesized"
)

// 博客状态常量
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

// 通用启停状态常量（作者/分类/话题/商品/优惠券等）
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// 评价状态常量
const (
	ReviewStatusActive = "active"
	ReviewStatusHidden = "hidden"
)

// 评分边界常量
const (
	ReviewRatingMin       = 1
	ReviewRatingMax       = 5
	ReviewMessageMinChars = 10
)

// 用户角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 地址标签常量
const (
	AddressLabelHome  = "Home"
	AddressLabelWork  = "Work"
	AddressLabelOther = "Other"
)

// 列表排序常量
const (
	SortNewToOld      = "new_to_old"
	SortOldToNew      = "old_to_new"
	SortHighestRating = "highest_rating"
	SortLowestRating  = "lowest_rating"
)

// 统计周期常量
const (
	StatsPeriodWeek  = "week"
	StatsPeriodMonth = "month"
	StatsPeriodYear  = "year"
)

// 上下文键常量
const (
	ContextKeyUser      = "auth_user"
	ContextKeyClaims    = "identity_claims"
	ContextKeyRequestID = "request_id"
)

// 缓存键前缀常量
const (
	CacheKeyPublicBlogs        = "public:blogs"
	CacheKeyFeaturedBlogs      = "public:blogs:featured"
	CacheKeyPopularBlogs       = "public:blogs:popular"
	CacheKeyFeaturedCategories = "public:categories:featured"
	CacheKeyPopularCategories  = "public:categories:popular"
	CacheKeyPublicProducts     = "public:products"
	CacheKeyAdminStats         = "admin:stats"
)

// 队列与任务名称常量
const (
	QueueDefault = "default"

	TaskOrderPaidNotify = "order:paid_notify"
	TaskMediaCleanup    = "media:cleanup"
)

// 存储键前缀常量
const (
	StorageKeyBlogThumbnails   = "blogs/thumbnails"
	StorageKeyAuthorProfiles   = "authors/profiles"
	StorageKeyCategoryImages   = "categories/images"
	StorageKeyProductImages    = "products/images"
	StorageKeyProductVideos    = "products/videos"
)
