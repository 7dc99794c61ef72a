package repository

// BlogListFilter 查询博客列表的过滤条件
type BlogListFilter struct {
	Page         int
	PageSize     int
	Search       string
	Status       string
	Statuses     []string
	AuthorID     uint
	CategoryID   uint
	TopicID      uint
	BlogIDs      []uint
	FeaturedOnly bool
	PopularOnly  bool
	WithRelated  bool
	OmitContent  bool
	OrderBy      string
}

// AuthorListFilter 查询作者列表的过滤条件
type AuthorListFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// CategoryListFilter 查询博客分类列表的过滤条件
type CategoryListFilter struct {
	Page         int
	PageSize     int
	Search       string
	Status       string
	FeaturedOnly bool
	PopularOnly  bool
	OrderBy      string
}

// TopicListFilter 查询话题列表的过滤条件
type TopicListFilter struct {
	Page         int
	PageSize     int
	Search       string
	Status       string
	CategoryID   uint
	FeaturedOnly bool
	PopularOnly  bool
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	Search        string
	Status        string
	CategoryID    uint
	PublishedOnly bool
	PopularOnly   bool
	FeaturedOnly  bool
	OrderBy       string
}

// ProductCategoryListFilter 查询商品分类列表的过滤条件
type ProductCategoryListFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

// CouponListFilter 查询优惠券列表的过滤条件
type CouponListFilter struct {
	Page         int
	PageSize     int
	Search       string
	Status       string
	DiscountType string
	OrderBy      string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentStatus string
	OrderNo       string
	WithItems     bool
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	UserID    uint
	ProductID uint
	Status    string
	Rating    int
	Sort      string
}

// ContactListFilter 查询留言列表的过滤条件
type ContactListFilter struct {
	Page     int
	PageSize int
	Search   string
	OrderBy  string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Search   string
	Blocked  *bool
}
