package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloomcart/internal/constants"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/queue"
	"github.com/bloomcart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthorServiceTest(t *testing.T) (*AuthorService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:author_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Author{}, &models.Category{}, &models.Topic{}, &models.Blog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	return NewAuthorService(
		repository.NewAuthorRepository(db),
		repository.NewBlogRepository(db),
		queueClient,
		nil,
	), db
}

func TestAuthorToggleStatus(t *testing.T) {
	svc, db := setupAuthorServiceTest(t)
	author := &models.Author{Name: "Maya Fernandes", Status: constants.StatusActive}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}

	toggled, err := svc.ToggleStatus(author.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Status != constants.StatusInactive {
		t.Fatalf("expected inactive, got %q", toggled.Status)
	}

	toggled, err = svc.ToggleStatus(author.ID)
	if err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	if toggled.Status != constants.StatusActive {
		t.Fatalf("expected active, got %q", toggled.Status)
	}

	if _, err := svc.ToggleStatus(9999); !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}
