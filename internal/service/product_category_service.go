package service

import (
	"strings"

	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/storage"
)

// ProductCategoryService 商品分类服务
type ProductCategoryService struct {
	repo        repository.ProductCategoryRepository
	queueClient *queue.Client
	store       storage.ObjectStorage
}

// NewProductCategoryService 创建商品分类服务
func NewProductCategoryService(repo repository.ProductCategoryRepository, queueClient *queue.Client, store storage.ObjectStorage) *ProductCategoryService {
	return &ProductCategoryService{
		repo:        repo,
		queueClient: queueClient,
		store:       store,
	}
}

// ProductCategoryInput 商品分类写入输入
type ProductCategoryInput struct {
	Name      string
	Image     string
	Status    string
	SortOrder int
}

// Get 获取商品分类详情
func (s *ProductCategoryService) Get(id uint) (*models.ProductCategory, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrProductCategoryNotFound
	}
	return category, nil
}

// List 获取商品分类列表
func (s *ProductCategoryService) List(filter repository.ProductCategoryListFilter) ([]models.ProductCategory, int64, error) {
	return s.repo.List(filter)
}

// Create 创建商品分类
func (s *ProductCategoryService) Create(input ProductCategoryInput) (*models.ProductCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductCategoryNotFound
	}
	category := &models.ProductCategory{
		Name:      name,
		Image:     input.Image,
		Status:    normalizeToggleStatus(input.Status),
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新商品分类，图片被替换时旧文件交给清理任务
func (s *ProductCategoryService) Update(id uint, input ProductCategoryInput) (*models.ProductCategory, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrProductCategoryNotFound
	}

	oldImage := category.Image
	category.Name = strings.TrimSpace(input.Name)
	category.Image = input.Image
	category.Status = normalizeToggleStatus(input.Status)
	category.SortOrder = input.SortOrder

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	if oldImage != "" && oldImage != category.Image {
		enqueueMediaCleanup(s.queueClient, s.store, oldImage)
	}
	return category, nil
}

// ToggleStatus 切换商品分类启停状态
func (s *ProductCategoryService) ToggleStatus(id uint) (*models.ProductCategory, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrProductCategoryNotFound
	}
	category.Status = flipActiveStatus(category.Status)
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除商品分类，仍有商品关联时拒绝
func (s *ProductCategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrProductCategoryNotFound
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if category.Image != "" {
		enqueueMediaCleanup(s.queueClient, s.store, category.Image)
	}
	return nil
}
