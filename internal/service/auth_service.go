package service

import (
	"strings"
	"time"

	"github.com/bloomcart/internal/identity"
	"github.com/bloomcart/internal/logger"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"
)

// AuthService 用户档案服务，镜像外部身份提供方的账号
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 创建用户档案服务
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterInput 注册补充资料
type RegisterInput struct {
	FullName    string
	PhoneNumber string
}

// Register 按身份声明落地本地档案，重复注册返回冲突
func (s *AuthService) Register(claims *identity.Claims, input RegisterInput) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	existing, err := s.userRepo.GetByProviderUID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	now := time.Now()
	user := &models.User{
		ProviderUID:    claims.Subject,
		Email:          claims.Email,
		PhoneNumber:    claims.PhoneNumber,
		EmailVerified:  claims.EmailVerified,
		SignInProvider: claims.SignInProvider,
		FullName:       strings.TrimSpace(input.FullName),
		LastLoginAt:    &now,
	}
	if strings.TrimSpace(input.PhoneNumber) != "" {
		user.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("user_registered",
		"user_id", user.ID,
		"sign_in_provider", claims.SignInProvider,
	)
	return user, nil
}

// Login 按身份声明取回本地档案并刷新登录信息
func (s *AuthService) Login(claims *identity.Claims) (*models.User, error) {
	user, err := s.Resolve(claims)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.Email = claims.Email
	user.EmailVerified = claims.EmailVerified
	user.SignInProvider = claims.SignInProvider
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Resolve 按身份声明定位本地用户，封禁与注销账号被拒绝
func (s *AuthService) Resolve(claims *identity.Claims) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	user, err := s.userRepo.GetByProviderUID(claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsDeleted {
		return nil, ErrUserDeleted
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}
	return user, nil
}

// UpdateProfileInput 更新资料输入
type UpdateProfileInput struct {
	FullName    *string
	PhoneNumber *string
}

// UpdateProfile 更新用户资料
func (s *AuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers 获取用户列表（管理端）
func (s *AuthService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetUser 获取用户详情（管理端）
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetBlockStatus 设置用户封禁状态（管理端）
func (s *AuthService) SetBlockStatus(id uint, blocked bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted {
		return nil, ErrUserNotFound
	}
	if user.IsBlocked != blocked {
		if err := s.userRepo.SetBlocked(id, blocked); err != nil {
			return nil, err
		}
		user.IsBlocked = blocked
	}
	logger.Infow("user_block_status_updated",
		"user_id", id,
		"is_blocked", blocked,
	)
	return user, nil
}

// DeleteAccount 注销账号（软删除，后续访问返回 410）
func (s *AuthService) DeleteAccount(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.MarkDeleted(userID); err != nil {
		return err
	}
	logger.Infow("user_account_deleted", "user_id", userID)
	return nil
}
