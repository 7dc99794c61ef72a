package service

import "errors"

// 服务层哨兵错误，由各 handler 的 error_mapping 表映射为响应码
var (
	// 用户与身份
	ErrTokenInvalid     = errors.New("token invalid")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already registered")
	ErrUserBlocked      = errors.New("user is blocked")
	ErrUserDeleted      = errors.New("user account deleted")
	ErrPermissionDenied = errors.New("permission denied")

	// 地址
	ErrAddressNotFound = errors.New("address not found")

	// 作者 / 分类 / 主题 / 博客
	ErrAuthorNotFound   = errors.New("author not found")
	ErrAuthorInUse      = errors.New("author has blogs attached")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has blogs or topics attached")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrTopicInUse       = errors.New("topic has blogs attached")
	ErrBlogNotFound     = errors.New("blog not found")
	ErrBlogTitleEmpty   = errors.New("blog title required")
	ErrFavoriteExists   = errors.New("blog already favorited")
	ErrFavoriteNotFound = errors.New("favorite not found")

	// 商品
	ErrProductNotFound         = errors.New("product not found")
	ErrProductUnavailable      = errors.New("product unavailable")
	ErrProductPriceInvalid     = errors.New("sell price exceeds base price")
	ErrProductCategoryNotFound = errors.New("product category not found")
	ErrProductCategoryInUse    = errors.New("product category has products attached")
	ErrPackageInvalid          = errors.New("package selection invalid")

	// 购物车 / 心愿单
	ErrCartLineInvalid = errors.New("cart line invalid")
	ErrCartEmpty       = errors.New("cart is empty")

	// 优惠券
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponInactive      = errors.New("coupon inactive")
	ErrCouponMinOrderValue = errors.New("order below coupon minimum")
	ErrCouponInvalid       = errors.New("coupon invalid")

	// 订单
	ErrInvalidOrderItem   = errors.New("order item invalid")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrOrderFetchFailed   = errors.New("order fetch failed")
	ErrOrderUpdateFailed  = errors.New("order update failed")
	ErrOrderStatusInvalid = errors.New("order status transition invalid")

	// 支付
	ErrPaymentGateway           = errors.New("payment gateway error")
	ErrPaymentSignatureMismatch = errors.New("payment signature mismatch")
	ErrPaymentAlreadyPaid       = errors.New("order already paid")

	// 评价
	ErrReviewNotFound        = errors.New("review not found")
	ErrReviewExists          = errors.New("product already reviewed")
	ErrReviewRatingInvalid   = errors.New("rating out of range")
	ErrReviewMessageTooShort = errors.New("review message too short")
	ErrReviewOrderInvalid    = errors.New("no delivered order for product")
	ErrReviewStatusInvalid   = errors.New("review status invalid")

	// 留言与验证码
	ErrContactNotFound = errors.New("contact not found")
	ErrContactInvalid  = errors.New("contact form invalid")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	// 上传
	ErrUploadInvalidType = errors.New("unsupported file type")
	ErrUploadTooLarge    = errors.New("file too large")
	ErrUploadFailed      = errors.New("upload failed")
)
