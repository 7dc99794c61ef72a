package service

import (
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"
	"github.com/bloomcart/internal/storage"
)

// AuthorService 作者服务
type AuthorService struct {
	authorRepo  repository.AuthorRepository
	blogRepo    repository.BlogRepository
	queueClient *queue.Client
	store       storage.ObjectStorage
}

// NewAuthorService 创建作者服务
func NewAuthorService(authorRepo repository.AuthorRepository, blogRepo repository.BlogRepository, queueClient *queue.Client, store storage.ObjectStorage) *AuthorService {
	return &AuthorService{
		authorRepo:  authorRepo,
		blogRepo:    blogRepo,
		queueClient: queueClient,
		store:       store,
	}
}

// AuthorInput 作者写入输入
type AuthorInput struct {
	Name            string
	InstagramHandle string
	Description     string
	ProfileImage    string
	Status          string
	SortOrder       int
}

// Get 获取作者详情
func (s *AuthorService) Get(id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	return author, nil
}

// List 获取作者列表
func (s *AuthorService) List(filter repository.AuthorListFilter) ([]models.Author, int64, error) {
	return s.authorRepo.List(filter)
}

// Create 创建作者
func (s *AuthorService) Create(input AuthorInput) (*models.Author, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrAuthorNotFound
	}
	author := &models.Author{
		Name:            name,
		InstagramHandle: strings.TrimSpace(input.InstagramHandle),
		Description:     input.Description,
		ProfileImage:    input.ProfileImage,
		Status:          normalizeToggleStatus(input.Status),
		SortOrder:       input.SortOrder,
	}
	if err := s.authorRepo.Create(author); err != nil {
		return nil, err
	}
	return author, nil
}

// Update 更新作者，头像被替换时旧文件交给清理任务
func (s *AuthorService) Update(id uint, input AuthorInput) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	oldImage := author.ProfileImage
	author.Name = strings.TrimSpace(input.Name)
	author.InstagramHandle = strings.TrimSpace(input.InstagramHandle)
	author.Description = input.Description
	author.ProfileImage = input.ProfileImage
	author.Status = normalizeToggleStatus(input.Status)
	author.SortOrder = input.SortOrder

	if err := s.authorRepo.Update(author); err != nil {
		return nil, err
	}
	if oldImage != "" && oldImage != author.ProfileImage {
		enqueueMediaCleanup(s.queueClient, s.store, oldImage)
	}
	return author, nil
}

// ToggleStatus 切换作者启停状态
func (s *AuthorService) ToggleStatus(id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}
	author.Status = flipActiveStatus(author.Status)
	if err := s.authorRepo.Update(author); err != nil {
		return nil, err
	}
	return author, nil
}

// Delete 删除作者，仍有博客关联时拒绝
func (s *AuthorService) Delete(id uint) error {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrAuthorNotFound
	}
	count, err := s.blogRepo.CountByAuthor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAuthorInUse
	}
	if err := s.authorRepo.Delete(id); err != nil {
		return err
	}
	if author.ProfileImage != "" {
		enqueueMediaCleanup(s.queueClient, s.store, author.ProfileImage)
	}
	return nil
}

func normalizeToggleStatus(status string) string {
	if strings.ToLower(strings.TrimSpace(status)) == constants.StatusInactive {
		return constants.StatusInactive
	}
	return constants.StatusActive
}

// flipActiveStatus 在启用与停用之间切换
func flipActiveStatus(status string) string {
	if status == constants.StatusActive {
		return constants.StatusInactive
	}
	return constants.StatusActive
}
