package repository

import (
	"errors"

	"github.com/bloomcart/internal/models"

	"gorm.io/gorm"
)

// TopicRepository 话题数据访问接口
type TopicRepository interface {
	GetByID(id uint) (*models.Topic, error)
	ListByIDs(ids []uint) ([]models.Topic, error)
	Create(topic *models.Topic) error
	Update(topic *models.Topic) error
	Delete(id uint) error
	List(filter TopicListFilter) ([]models.Topic, int64, error)
	ReplaceCategories(topic *models.Topic, categories []models.Category) error
	CountByCategory(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormTopicRepository
}

// GormTopicRepository GORM 实现
type GormTopicRepository struct {
	db *gorm.DB
}

// NewTopicRepository 创建话题仓库
func NewTopicRepository(db *gorm.DB) *GormTopicRepository {
	return &GormTopicRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTopicRepository) WithTx(tx *gorm.DB) *GormTopicRepository {
	if tx == nil {
		return r
	}
	return &GormTopicRepository{db: tx}
}

// GetByID 根据ID获取话题（带分类）
func (r *GormTopicRepository) GetByID(id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := r.db.Preload("Categories").First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// ListByIDs 批量获取话题
func (r *GormTopicRepository) ListByIDs(ids []uint) ([]models.Topic, error) {
	if len(ids) == 0 {
		return []models.Topic{}, nil
	}
	var topics []models.Topic
	if err := r.db.Where("id IN ?", ids).Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

// Create 创建话题
func (r *GormTopicRepository) Create(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

// Update 更新话题
func (r *GormTopicRepository) Update(topic *models.Topic) error {
	return r.db.Save(topic).Error
}

// Delete 删除话题（同时清理分类关联）
func (r *GormTopicRepository) Delete(id uint) error {
	topic := models.Topic{ID: id}
	if err := r.db.Model(&topic).Association("Categories").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&models.Topic{}, id).Error
}

// List 获取话题列表
func (r *GormTopicRepository) List(filter TopicListFilter) ([]models.Topic, int64, error) {
	var topics []models.Topic
	query := r.db.Model(&models.Topic{})

	if filter.Search != "" {
		cond, args := searchLikeCondition(r.db, filter.Search, "name")
		query = query.Where(cond, args...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if filter.PopularOnly {
		query = query.Where("popular = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Joins("JOIN topic_categories tc ON tc.topic_id = topics.id").
			Where("tc.category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyPagination(query.Preload("Categories").Order("sort_order ASC, created_at DESC"), filter.Page, filter.PageSize).
		Find(&topics).Error
	if err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

// ReplaceCategories 重建话题与分类的关联
func (r *GormTopicRepository) ReplaceCategories(topic *models.Topic, categories []models.Category) error {
	return r.db.Model(topic).Association("Categories").Replace(categories)
}

// CountByCategory 统计某分类下的话题数
func (r *GormTopicRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Table("topic_categories").Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
