package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAddressServiceTest(t *testing.T) (*AddressService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:address_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewAddressService(repository.NewAddressRepository(db)), db
}

func addressInput(line, label string, isDefault bool) AddressInput {
	return AddressInput{
		Line:      line,
		Zipcode:   "560001",
		City:      "Bengaluru",
		State:     "Karnataka",
		Label:     label,
		IsDefault: isDefault,
	}
}

func countDefaults(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error; err != nil {
		t.Fatalf("count defaults failed: %v", err)
	}
	return count
}

func TestAddressSingleDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(1, addressInput("12 Petal Street", constants.AddressLabelHome, true))
	if err != nil {
		t.Fatalf("create first address failed: %v", err)
	}
	second, err := svc.Create(1, addressInput("7 Garden Lane", constants.AddressLabelWork, true))
	if err != nil {
		t.Fatalf("create second address failed: %v", err)
	}

	if countDefaults(t, db, 1) != 1 {
		t.Fatal("expected exactly one default address")
	}
	var stored models.Address
	if err := db.First(&stored, second.ID).Error; err != nil {
		t.Fatalf("reload address failed: %v", err)
	}
	if !stored.IsDefault {
		t.Fatal("expected latest default to win")
	}
	stored = models.Address{}
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload address failed: %v", err)
	}
	if stored.IsDefault {
		t.Fatal("expected previous default unset")
	}
}

func TestAddressSetDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(1, addressInput("12 Petal Street", constants.AddressLabelHome, true))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	second, err := svc.Create(1, addressInput("7 Garden Lane", constants.AddressLabelWork, false))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	updated, err := svc.SetDefault(second.ID, 1)
	if err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	if !updated.IsDefault {
		t.Fatal("expected address marked default")
	}
	if countDefaults(t, db, 1) != 1 {
		t.Fatal("expected exactly one default address")
	}

	var stored models.Address
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload address failed: %v", err)
	}
	if stored.IsDefault {
		t.Fatal("expected old default unset")
	}

	if _, err := svc.SetDefault(second.ID, 2); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound for foreign user, got %v", err)
	}
}

func TestAddressDeleteDefaultPromotesLatest(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(1, addressInput("12 Petal Street", constants.AddressLabelHome, true))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	if _, err := svc.Create(1, addressInput("7 Garden Lane", constants.AddressLabelWork, false)); err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	third, err := svc.Create(1, addressInput("3 Rose Avenue", "", false))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	if err := svc.Delete(first.ID, 1); err != nil {
		t.Fatalf("delete default address failed: %v", err)
	}

	if countDefaults(t, db, 1) != 1 {
		t.Fatal("expected a promoted default address")
	}
	var stored models.Address
	if err := db.First(&stored, third.ID).Error; err != nil {
		t.Fatalf("reload address failed: %v", err)
	}
	if !stored.IsDefault {
		t.Fatal("expected latest remaining address promoted to default")
	}
}

func TestAddressDeleteNonDefault(t *testing.T) {
	svc, db := setupAddressServiceTest(t)

	first, err := svc.Create(1, addressInput("12 Petal Street", constants.AddressLabelHome, true))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	second, err := svc.Create(1, addressInput("7 Garden Lane", constants.AddressLabelWork, false))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}

	if err := svc.Delete(second.ID, 1); err != nil {
		t.Fatalf("delete address failed: %v", err)
	}
	var stored models.Address
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload address failed: %v", err)
	}
	if !stored.IsDefault {
		t.Fatal("default must not move when a non-default address is deleted")
	}

	if err := svc.Delete(second.ID, 1); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestAddressLabelNormalized(t *testing.T) {
	svc, _ := setupAddressServiceTest(t)

	created, err := svc.Create(1, addressInput("12 Petal Street", "Office", false))
	if err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	if created.Label != constants.AddressLabelOther {
		t.Fatalf("expected unknown label normalized to Other, got %q", created.Label)
	}

	updated, err := svc.Update(created.ID, 1, addressInput("12 Petal Street", constants.AddressLabelWork, false))
	if err != nil {
		t.Fatalf("update address failed: %v", err)
	}
	if updated.Label != constants.AddressLabelWork {
		t.Fatalf("expected Work label kept, got %q", updated.Label)
	}

	if _, err := svc.Update(9999, 1, addressInput("x", "", false)); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}
