package service

import (
	"strings"

	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
)

// TopicService 博客话题服务
type TopicService struct {
	topicRepo    repository.TopicRepository
	categoryRepo repository.CategoryRepository
	blogRepo     repository.BlogRepository
}

// NewTopicService 创建博客话题服务
func NewTopicService(topicRepo repository.TopicRepository, categoryRepo repository.CategoryRepository, blogRepo repository.BlogRepository) *TopicService {
	return &TopicService{
		topicRepo:    topicRepo,
		categoryRepo: categoryRepo,
		blogRepo:     blogRepo,
	}
}

// TopicInput 话题写入输入
type TopicInput struct {
	Name        string
	Status      string
	Featured    bool
	Popular     bool
	SortOrder   int
	CategoryIDs []uint
}

// Get 获取话题详情
func (s *TopicService) Get(id uint) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	return topic, nil
}

// List 获取话题列表
func (s *TopicService) List(filter repository.TopicListFilter) ([]models.Topic, int64, error) {
	return s.topicRepo.List(filter)
}

// Create 创建话题并关联分类
func (s *TopicService) Create(input TopicInput) (*models.Topic, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTopicNotFound
	}
	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	topic := &models.Topic{
		Name:      name,
		Status:    normalizeToggleStatus(input.Status),
		Featured:  input.Featured,
		Popular:   input.Popular,
		SortOrder: input.SortOrder,
	}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		if err := s.topicRepo.ReplaceCategories(topic, categories); err != nil {
			return nil, err
		}
	}
	return topic, nil
}

// Update 更新话题与分类关联
func (s *TopicService) Update(id uint, input TopicInput) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	topic.Name = strings.TrimSpace(input.Name)
	topic.Status = normalizeToggleStatus(input.Status)
	topic.Featured = input.Featured
	topic.Popular = input.Popular
	topic.SortOrder = input.SortOrder

	if err := s.topicRepo.Update(topic); err != nil {
		return nil, err
	}
	if err := s.topicRepo.ReplaceCategories(topic, categories); err != nil {
		return nil, err
	}
	return topic, nil
}

// ToggleStatus 切换话题启停状态
func (s *TopicService) ToggleStatus(id uint) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	topic.Status = flipActiveStatus(topic.Status)
	if err := s.topicRepo.Update(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// Delete 删除话题，仍有博客关联时拒绝
func (s *TopicService) Delete(id uint) error {
	topic, err := s.topicRepo.GetByID(id)
	if err != nil {
		return err
	}
	if topic == nil {
		return ErrTopicNotFound
	}
	count, err := s.blogRepo.CountByTopic(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTopicInUse
	}
	return s.topicRepo.Delete(id)
}

func (s *TopicService) resolveCategories(ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.categoryRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(uniqueIDs(ids)) {
		return nil, ErrCategoryNotFound
	}
	return categories, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
