package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/storage"

	"gorm.io/gorm"
)

// BlogService 博客服务
type BlogService struct {
	blogRepo     repository.BlogRepository
	authorRepo   repository.AuthorRepository
	categoryRepo repository.CategoryRepository
	topicRepo    repository.TopicRepository
	queueClient  *queue.Client
	store        storage.ObjectStorage
}

// NewBlogService 创建博客服务
func NewBlogService(blogRepo repository.BlogRepository, authorRepo repository.AuthorRepository, categoryRepo repository.CategoryRepository, topicRepo repository.TopicRepository, queueClient *queue.Client, store storage.ObjectStorage) *BlogService {
	return &BlogService{
		blogRepo:     blogRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		topicRepo:    topicRepo,
		queueClient:  queueClient,
		store:        store,
	}
}

// BlogInput 博客写入输入
type BlogInput struct {
	Title       string
	Description string
	Content     string
	Thumbnail   string
	VideoLink   string
	AuthorID    uint
	Status      string
	Featured    bool
	Popular     bool
	SortOrder   int
	CategoryIDs []uint
	TopicIDs    []uint
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// GetPublished 获取已发布博客详情并累加浏览数
func (s *BlogService) GetPublished(id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if blog == nil || blog.Status != constants.BlogStatusPublished {
		return nil, ErrBlogNotFound
	}
	if err := s.blogRepo.IncrementViews(id); err != nil {
		return nil, err
	}
	blog.Views++
	return blog, nil
}

// Get 获取博客详情（管理端，不限状态）
func (s *BlogService) Get(id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

// List 获取博客列表
func (s *BlogService) List(filter repository.BlogListFilter) ([]models.Blog, int64, error) {
	return s.blogRepo.List(filter)
}

// Create 创建博客。分类引用计数与博客写入同事务提交。
func (s *BlogService) Create(input BlogInput) (*models.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBlogTitleEmpty
	}
	author, err := s.authorRepo.GetByID(input.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	categories, topics, err := s.resolveRelations(input.CategoryIDs, input.TopicIDs)
	if err != nil {
		return nil, err
	}

	status := normalizeBlogStatus(input.Status)
	blog := &models.Blog{
		Title:       title,
		Description: input.Description,
		Content:     input.Content,
		Thumbnail:   input.Thumbnail,
		VideoLink:   input.VideoLink,
		Slug:        generateSlug(title),
		AuthorID:    input.AuthorID,
		Status:      status,
		Featured:    input.Featured,
		Popular:     input.Popular,
		SortOrder:   input.SortOrder,
	}
	if status == constants.BlogStatusPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		blogRepo := s.blogRepo.WithTx(tx)
		if err := blogRepo.Create(blog); err != nil {
			return err
		}
		if err := blogRepo.ReplaceCategories(blog, categories); err != nil {
			return err
		}
		if err := blogRepo.ReplaceTopics(blog, topics); err != nil {
			return err
		}
		if len(categories) > 0 {
			return s.categoryRepo.WithTx(tx).IncrementUsedCount(categoryIDsOf(categories))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Update 更新博客。分类变化按新旧差集增减引用计数，减至 0 为止。
func (s *BlogService) Update(id uint, input BlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	author, err := s.authorRepo.GetByID(input.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	categories, topics, err := s.resolveRelations(input.CategoryIDs, input.TopicIDs)
	if err != nil {
		return nil, err
	}
	oldCategoryIDs, err := s.blogRepo.CategoryIDsOf(id)
	if err != nil {
		return nil, err
	}

	oldThumbnail := blog.Thumbnail
	title := strings.TrimSpace(input.Title)
	if title != "" && title != blog.Title {
		blog.Title = title
		blog.Slug = generateSlug(title)
	}
	blog.Description = input.Description
	blog.Content = input.Content
	blog.Thumbnail = input.Thumbnail
	blog.VideoLink = input.VideoLink
	blog.AuthorID = input.AuthorID
	blog.Featured = input.Featured
	blog.Popular = input.Popular
	blog.SortOrder = input.SortOrder

	status := normalizeBlogStatus(input.Status)
	if status == constants.BlogStatusPublished && blog.PublishedAt == nil {
		now := time.Now()
		blog.PublishedAt = &now
	}
	blog.Status = status

	added, removed := diffIDSets(oldCategoryIDs, categoryIDsOf(categories))
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		blogRepo := s.blogRepo.WithTx(tx)
		if err := blogRepo.Update(blog); err != nil {
			return err
		}
		if err := blogRepo.ReplaceCategories(blog, categories); err != nil {
			return err
		}
		if err := blogRepo.ReplaceTopics(blog, topics); err != nil {
			return err
		}
		categoryRepo := s.categoryRepo.WithTx(tx)
		if len(removed) > 0 {
			if err := categoryRepo.DecrementUsedCount(removed); err != nil {
				return err
			}
		}
		if len(added) > 0 {
			return categoryRepo.IncrementUsedCount(added)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if oldThumbnail != "" && oldThumbnail != blog.Thumbnail {
		enqueueMediaCleanup(s.queueClient, s.store, oldThumbnail)
	}
	return blog, nil
}

// ToggleStatus 在发布与草稿之间切换，首次发布补记发布时间
func (s *BlogService) ToggleStatus(id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	if blog.Status == constants.BlogStatusPublished {
		blog.Status = constants.BlogStatusDraft
	} else {
		blog.Status = constants.BlogStatusPublished
		if blog.PublishedAt == nil {
			now := time.Now()
			blog.PublishedAt = &now
		}
	}
	if err := s.blogRepo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// ToggleFeatured 切换推荐标记
func (s *BlogService) ToggleFeatured(id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	blog.Featured = !blog.Featured
	if err := s.blogRepo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// TogglePopular 切换热门标记
func (s *BlogService) TogglePopular(id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	blog.Popular = !blog.Popular
	if err := s.blogRepo.Update(blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete 删除博客并释放其分类引用计数
func (s *BlogService) Delete(id uint) error {
	blog, err := s.blogRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if blog == nil {
		return ErrBlogNotFound
	}
	categoryIDs, err := s.blogRepo.CategoryIDsOf(id)
	if err != nil {
		return err
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.blogRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			return s.categoryRepo.WithTx(tx).DecrementUsedCount(categoryIDs)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if blog.Thumbnail != "" {
		enqueueMediaCleanup(s.queueClient, s.store, blog.Thumbnail)
	}
	return nil
}

func (s *BlogService) resolveRelations(categoryIDs, topicIDs []uint) ([]models.Category, []models.Topic, error) {
	var categories []models.Category
	if len(categoryIDs) > 0 {
		loaded, err := s.categoryRepo.ListByIDs(categoryIDs)
		if err != nil {
			return nil, nil, err
		}
		if len(loaded) != len(uniqueIDs(categoryIDs)) {
			return nil, nil, ErrCategoryNotFound
		}
		categories = loaded
	}
	var topics []models.Topic
	if len(topicIDs) > 0 {
		loaded, err := s.topicRepo.ListByIDs(topicIDs)
		if err != nil {
			return nil, nil, err
		}
		if len(loaded) != len(uniqueIDs(topicIDs)) {
			return nil, nil, ErrTopicNotFound
		}
		topics = loaded
	}
	return categories, topics, nil
}

// generateSlug 由标题生成唯一 slug，追加时间戳后缀避免撞名
func generateSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = slugStripPattern.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "blog"
	}
	return fmt.Sprintf("%s-%d", base, time.Now().UnixMilli())
}

func normalizeBlogStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.BlogStatusPublished:
		return constants.BlogStatusPublished
	case constants.BlogStatusArchived:
		return constants.BlogStatusArchived
	default:
		return constants.BlogStatusDraft
	}
}

func categoryIDsOf(categories []models.Category) []uint {
	ids := make([]uint, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	return ids
}

// diffIDSets 计算新旧 ID 集合的增删差集
func diffIDSets(oldIDs, newIDs []uint) (added, removed []uint) {
	oldSet := make(map[uint]struct{}, len(oldIDs))
	for _, id := range oldIDs {
		oldSet[id] = struct{}{}
	}
	newSet := make(map[uint]struct{}, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = struct{}{}
	}
	for _, id := range newIDs {
		if _, ok := oldSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range oldIDs {
		if _, ok := newSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
