package service

import (
	"strings"

	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/storage"
)

// CategoryService 博客分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	blogRepo     repository.BlogRepository
	topicRepo    repository.TopicRepository
	queueClient  *queue.Client
	store        storage.ObjectStorage
}

// NewCategoryService 创建博客分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, blogRepo repository.BlogRepository, topicRepo repository.TopicRepository, queueClient *queue.Client, store storage.ObjectStorage) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		blogRepo:     blogRepo,
		topicRepo:    topicRepo,
		queueClient:  queueClient,
		store:        store,
	}
}

// CategoryInput 分类写入输入
type CategoryInput struct {
	Name      string
	Image     string
	Status    string
	Featured  bool
	Popular   bool
	SortOrder int
}

// Get 获取分类详情
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// List 获取分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.categoryRepo.List(filter)
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNotFound
	}
	category := &models.Category{
		Name:      name,
		Image:     input.Image,
		Status:    normalizeToggleStatus(input.Status),
		Featured:  input.Featured,
		Popular:   input.Popular,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类，图片被替换时旧文件交给清理任务
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	oldImage := category.Image
	category.Name = strings.TrimSpace(input.Name)
	category.Image = input.Image
	category.Status = normalizeToggleStatus(input.Status)
	category.Featured = input.Featured
	category.Popular = input.Popular
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	if oldImage != "" && oldImage != category.Image {
		enqueueMediaCleanup(s.queueClient, s.store, oldImage)
	}
	return category, nil
}

// ToggleStatus 切换分类启停状态
func (s *CategoryService) ToggleStatus(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	category.Status = flipActiveStatus(category.Status)
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，仍被博客或话题引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	blogCount, err := s.blogRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if blogCount > 0 {
		return ErrCategoryInUse
	}
	topicCount, err := s.topicRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if topicCount > 0 {
		return ErrCategoryInUse
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	if category.Image != "" {
		enqueueMediaCleanup(s.queueClient, s.store, category.Image)
	}
	return nil
}
