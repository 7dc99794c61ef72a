package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// BlogRepository 博客数据访问接口
type BlogRepository interface {
	GetByID(id uint, withRelated bool) (*models.Blog, error)
	Create(blog *models.Blog) error
	Update(blog *models.Blog) error
	Delete(id uint) error
	List(filter BlogListFilter) ([]models.Blog, int64, error)
	ReplaceCategories(blog *models.Blog, categories []models.Category) error
	ReplaceTopics(blog *models.Blog, topics []models.Topic) error
	CategoryIDsOf(blogID uint) ([]uint, error)
	IncrementViews(id uint) error
	IncrementFavoriteCount(id uint, delta int) error
	CountByAuthor(authorID uint) (int64, error)
	CountByCategory(categoryID uint) (int64, error)
	CountByTopic(topicID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormBlogRepository
}

// GormBlogRepository GORM 实现
type GormBlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository 创建博客仓库
func NewBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBlogRepository) WithTx(tx *gorm.DB) *GormBlogRepository {
	if tx == nil {
		return r
	}
	return &GormBlogRepository{db: tx}
}

// GetByID 根据ID获取博客
func (r *GormBlogRepository) GetByID(id uint, withRelated bool) (*models.Blog, error) {
	var blog models.Blog
	query := r.db
	if withRelated {
		query = query.Preload("Author").Preload("Categories").Preload("Topics")
	}
	if err := query.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &blog, nil
}

// Create 创建博客
func (r *GormBlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update 更新博客
func (r *GormBlogRepository) Update(blog *models.Blog) error {
	return r.db.Omit("Categories", "Topics").Save(blog).Error
}

// Delete 删除博客（同时清理多对多关联）
func (r *GormBlogRepository) Delete(id uint) error {
	blog := models.Blog{ID: id}
	if err := r.db.Model(&blog).Association("Categories").Clear(); err != nil {
		return err
	}
	if err := r.db.Model(&blog).Association("Topics").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&models.Blog{}, id).Error
}

// List 获取博客列表
func (r *GormBlogRepository) List(filter BlogListFilter) ([]models.Blog, int64, error) {
	var blogs []models.Blog
	query := r.db.Model(&models.Blog{})

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "title", "description")
		query = query.Where(cond, args...)
	}
	if filter.Status != "" {
		query = query.Where("blogs.status = ?", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("blogs.status IN ?", filter.Statuses)
	}
	if filter.AuthorID > 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.PopularOnly {
		query = query.Where("popular = ?", true)
	}
	if len(filter.BlogIDs) > 0 {
		query = query.Where("blogs.id IN ?", filter.BlogIDs)
	}
	if filter.CategoryID > 0 {
		query = query.Joins("JOIN blog_categories bc ON bc.blog_id = blogs.id").
			Where("bc.category_id = ?", filter.CategoryID)
	}
	if filter.TopicID > 0 {
		query = query.Joins("JOIN blog_topics bt ON bt.blog_id = blogs.id").
			Where("bt.topic_id = ?", filter.TopicID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithRelated {
		query = query.Preload("Author").Preload("Categories").Preload("Topics")
	}
	if filter.OmitContent {
		// 列表不返回正文，避免大字段拖慢分页查询
		query = query.Omit("content")
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "sort_order ASC, created_at DESC"
	}
	err := applyPagination(query.Order(orderBy), filter.Page, filter.PageSize).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ReplaceCategories 重建博客与分类的关联
func (r *GormBlogRepository) ReplaceCategories(blog *models.Blog, categories []models.Category) error {
	return r.db.Model(blog).Association("Categories").Replace(categories)
}

// ReplaceTopics 重建博客与话题的关联
func (r *GormBlogRepository) ReplaceTopics(blog *models.Blog, topics []models.Topic) error {
	return r.db.Model(blog).Association("Topics").Replace(topics)
}

// CategoryIDsOf 获取博客当前关联的分类ID集合
func (r *GormBlogRepository) CategoryIDsOf(blogID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Table("blog_categories").Where("blog_id = ?", blogID).Pluck("category_id", &ids).Error
	return ids, err
}

// IncrementViews 浏览数自增
func (r *GormBlogRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Blog{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrementFavoriteCount 收藏数增减（delta 可为负，下限 0）
func (r *GormBlogRepository) IncrementFavoriteCount(id uint, delta int) error {
	if delta >= 0 {
		return r.db.Model(&models.Blog{}).Where("id = ?", id).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta)).Error
	}
	return r.db.Model(&models.Blog{}).Where("id = ? AND favorite_count > 0", id).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count + ?", delta)).Error
}

// CountByAuthor 统计作者名下博客数
func (r *GormBlogRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Blog{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// CountByCategory 统计某分类下的博客数
func (r *GormBlogRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Table("blog_categories").Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// CountByTopic 统计某话题下的博客数
func (r *GormBlogRepository) CountByTopic(topicID uint) (int64, error) {
	var count int64
	err := r.db.Table("blog_topics").Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}
