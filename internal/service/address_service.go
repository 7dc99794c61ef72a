package service

import (
	"strings"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"gorm.io/gorm"
)

// AddressService 收货地址服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建收货地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressInput 地址写入输入
type AddressInput struct {
	Line      string
	Zipcode   string
	City      string
	State     string
	Label     string
	IsDefault bool
}

// List 获取用户地址列表，默认地址排在最前
func (s *AddressService) List(userID uint, page, pageSize int) ([]models.Address, int64, error) {
	return s.addressRepo.ListByUser(userID, page, pageSize)
}

// Create 创建地址，设为默认时同事务取消其余默认
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	address := &models.Address{
		UserID:    userID,
		Line:      strings.TrimSpace(input.Line),
		Zipcode:   strings.TrimSpace(input.Zipcode),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Label:     normalizeAddressLabel(input.Label),
		IsDefault: input.IsDefault,
	}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if address.IsDefault {
			if err := repo.UnsetDefaultForUser(userID); err != nil {
				return err
			}
		}
		return repo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址
func (s *AddressService) Update(id, userID uint, input AddressInput) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	address.Line = strings.TrimSpace(input.Line)
	address.Zipcode = strings.TrimSpace(input.Zipcode)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.Label = normalizeAddressLabel(input.Label)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if input.IsDefault && !address.IsDefault {
			if err := repo.UnsetDefaultForUser(userID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		return repo.Update(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// SetDefault 将指定地址设为默认
func (s *AddressService) SetDefault(id, userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if err := repo.UnsetDefaultForUser(userID); err != nil {
			return err
		}
		return repo.SetDefault(id)
	})
	if err != nil {
		return nil, err
	}
	address.IsDefault = true
	return address, nil
}

// Delete 删除地址，删除默认地址时提升最新的剩余地址为默认
func (s *AddressService) Delete(id, userID uint) error {
	address, err := s.addressRepo.GetByIDForUser(id, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if err := repo.Delete(id); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		latest, err := repo.LatestByUser(userID)
		if err != nil {
			return err
		}
		if latest == nil {
			return nil
		}
		return repo.SetDefault(latest.ID)
	})
}

func normalizeAddressLabel(label string) string {
	switch strings.TrimSpace(label) {
	case constants.AddressLabelHome:
		return constants.AddressLabelHome
	case constants.AddressLabelWork:
		return constants.AddressLabelWork
	default:
		return constants.AddressLabelOther
	}
}
