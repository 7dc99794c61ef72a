package service

import (
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/storage"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.ProductCategoryRepository
	queueClient  *queue.Client
	store        storage.ObjectStorage
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.ProductCategoryRepository, queueClient *queue.Client, store storage.ObjectStorage) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		queueClient:  queueClient,
		store:        store,
	}
}

// ProductInput 商品写入输入
type ProductInput struct {
	Name            string
	Description     string
	Images          models.StringArray
	VideoURL        string
	QuantityDetails models.QuantityDetailList
	Metadata        models.JSON
	SortOrder       int
	IsPublished     bool
	IsPopular       bool
	IsFeatured      bool
	Status          string
	CategoryIDs     []uint
}

// GetPublished 获取上架商品详情
func (s *ProductService) GetPublished(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsPublished || product.Status != constants.StatusActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Get 获取商品详情（管理端）
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 获取商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNotFound
	}
	if err := validateQuantityDetails(input.QuantityDetails); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:            name,
		Description:     input.Description,
		Images:          input.Images,
		VideoURL:        input.VideoURL,
		QuantityDetails: input.QuantityDetails,
		Metadata:        input.Metadata,
		SortOrder:       input.SortOrder,
		IsPublished:     input.IsPublished,
		IsPopular:       input.IsPopular,
		IsFeatured:      input.IsFeatured,
		Status:          normalizeToggleStatus(input.Status),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		if err := s.productRepo.ReplaceCategories(product, categories); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Update 更新商品，被替换的图片与视频交给清理任务
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := validateQuantityDetails(input.QuantityDetails); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	replaced := replacedMediaURLs(product, input)
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Images = input.Images
	product.VideoURL = input.VideoURL
	product.QuantityDetails = input.QuantityDetails
	product.Metadata = input.Metadata
	product.SortOrder = input.SortOrder
	product.IsPublished = input.IsPublished
	product.IsPopular = input.IsPopular
	product.IsFeatured = input.IsFeatured
	product.Status = normalizeToggleStatus(input.Status)

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.ReplaceCategories(product, categories); err != nil {
		return nil, err
	}
	if len(replaced) > 0 {
		enqueueMediaCleanup(s.queueClient, s.store, replaced...)
	}
	return product, nil
}

// ToggleStatus 切换商品启停状态
func (s *ProductService) ToggleStatus(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	product.Status = flipActiveStatus(product.Status)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品并清理其媒体文件
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id, false)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	urls := append([]string{}, product.Images...)
	if product.VideoURL != "" {
		urls = append(urls, product.VideoURL)
	}
	if len(urls) > 0 {
		enqueueMediaCleanup(s.queueClient, s.store, urls...)
	}
	return nil
}

func (s *ProductService) resolveCategories(ids []uint) ([]models.ProductCategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.categoryRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(uniqueIDs(ids)) {
		return nil, ErrProductCategoryNotFound
	}
	return categories, nil
}

// validateQuantityDetails 校验每个价格档位售价不高于原价
func validateQuantityDetails(details models.QuantityDetailList) error {
	for _, detail := range details {
		for _, pkg := range detail.Packages {
			if pkg.SellPrice.Decimal.GreaterThan(pkg.BasePrice.Decimal) {
				return ErrProductPriceInvalid
			}
		}
	}
	return nil
}

func replacedMediaURLs(product *models.Product, input ProductInput) []string {
	keep := make(map[string]struct{}, len(input.Images)+1)
	for _, url := range input.Images {
		keep[url] = struct{}{}
	}
	if input.VideoURL != "" {
		keep[input.VideoURL] = struct{}{}
	}
	var replaced []string
	for _, url := range product.Images {
		if _, ok := keep[url]; !ok && url != "" {
			replaced = append(replaced, url)
		}
	}
	if product.VideoURL != "" {
		if _, ok := keep[product.VideoURL]; !ok {
			replaced = append(replaced, product.VideoURL)
		}
	}
	return replaced
}
