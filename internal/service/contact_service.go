package service

import (
	"net/mail"
	"strings"

	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
)

// ContactService 联系留言服务
type ContactService struct {
	contactRepo    repository.ContactRepository
	captchaService *CaptchaService
}

// NewContactService 创建联系留言服务
func NewContactService(contactRepo repository.ContactRepository, captchaService *CaptchaService) *ContactService {
	return &ContactService{
		contactRepo:    contactRepo,
		captchaService: captchaService,
	}
}

// ContactInput 联系留言输入
type ContactInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Message     string
	CaptchaID   string
	CaptchaCode string
}

// Submit 提交留言，验证码校验失败时拒绝
func (s *ContactService) Submit(input ContactInput) (*models.Contact, error) {
	if err := s.captchaService.Verify(input.CaptchaID, input.CaptchaCode); err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(input.FullName)
	message := strings.TrimSpace(input.Message)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if fullName == "" || message == "" {
		return nil, ErrContactInvalid
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrContactInvalid
	}

	contact := &models.Contact{
		FullName:    fullName,
		Email:       email,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Message:     message,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}
	logger.Infow("contact_submitted", "contact_id", contact.ID)
	return contact, nil
}

// List 获取留言列表（管理端）
func (s *ContactService) List(filter repository.ContactListFilter) ([]models.Contact, int64, error) {
	return s.contactRepo.List(filter)
}

// Delete 软删除留言（管理端）
func (s *ContactService) Delete(id uint) error {
	contact, err := s.contactRepo.GetByID(id)
	if err != nil {
		return err
	}
	if contact == nil || contact.IsDeleted {
		return ErrContactNotFound
	}
	return s.contactRepo.MarkDeleted(id)
}
