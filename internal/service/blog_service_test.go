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

func setupBlogServiceTest(t *testing.T) (*BlogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:blog_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Author{},
		&models.Category{},
		&models.Topic{},
		&models.Blog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	return NewBlogService(
		repository.NewBlogRepository(db),
		repository.NewAuthorRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewTopicRepository(db),
		queueClient,
		nil,
	), db
}

func createBlogTestAuthor(t *testing.T, db *gorm.DB) *models.Author {
	t.Helper()
	author := &models.Author{Name: "Maya Fernandes", Status: constants.StatusActive}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	return author
}

func createBlogTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Status: constants.StatusActive}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func categoryUsedCount(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		t.Fatalf("reload category failed: %v", err)
	}
	return category.UsedCount
}

func TestBlogCreateIncrementsUsedCount(t *testing.T) {
	svc, db := setupBlogServiceTest(t)
	author := createBlogTestAuthor(t, db)
	category := createBlogTestCategory(t, db, "Gardening")

	blog, err := svc.Create(BlogInput{
		Title:       "Growing Chamomile At Home",
		Description: "a beginner guide",
		Content:     "plant in spring",
		AuthorID:    author.ID,
		Status:      constants.BlogStatusPublished,
		CategoryIDs: []uint{category.ID},
	})
	if err != nil {
		t.Fatalf("create blog failed: %v", err)
	}
	if blog.Slug == "" || blog.PublishedAt == nil {
		t.Fatalf("expected slug and published time, got %+v", blog)
	}
	if got := categoryUsedCount(t, db, category.ID); got != 1 {
		t.Fatalf("expected used count 1, got %d", got)
	}

	if _, err := svc.Create(BlogInput{Title: "No author", AuthorID: 9999}); !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
	if _, err := svc.Create(BlogInput{
		Title:       "Ghost category",
		AuthorID:    author.ID,
		CategoryIDs: []uint{9999},
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestBlogUpdateAdjustsUsedCount(t *testing.T) {
	svc, db := setupBlogServiceTest(t)
	author := createBlogTestAuthor(t, db)
	first := createBlogTestCategory(t, db, "Gardening")
	second := createBlogTestCategory(t, db, "Recipes")

	blog, err := svc.Create(BlogInput{
		Title:       "Growing Chamomile At Home",
		AuthorID:    author.ID,
		CategoryIDs: []uint{first.ID},
	})
	if err != nil {
		t.Fatalf("create blog failed: %v", err)
	}

	if _, err := svc.Update(blog.ID, BlogInput{
		Title:       "Growing Chamomile At Home",
		AuthorID:    author.ID,
		CategoryIDs: []uint{second.ID},
	}); err != nil {
		t.Fatalf("update blog failed: %v", err)
	}

	if got := categoryUsedCount(t, db, first.ID); got != 0 {
		t.Fatalf("expected removed category count 0, got %d", got)
	}
	if got := categoryUsedCount(t, db, second.ID); got != 1 {
		t.Fatalf("expected added category count 1, got %d", got)
	}
}

func TestBlogDeleteDecrementsUsedCountWithFloor(t *testing.T) {
	svc, db := setupBlogServiceTest(t)
	author := createBlogTestAuthor(t, db)
	category := createBlogTestCategory(t, db, "Gardening")

	blog, err := svc.Create(BlogInput{
		Title:       "Growing Chamomile At Home",
		AuthorID:    author.ID,
		CategoryIDs: []uint{category.ID},
	})
	if err != nil {
		t.Fatalf("create blog failed: %v", err)
	}
	if err := svc.Delete(blog.ID); err != nil {
		t.Fatalf("delete blog failed: %v", err)
	}
	if got := categoryUsedCount(t, db, category.ID); got != 0 {
		t.Fatalf("expected used count 0, got %d", got)
	}

	// 计数已为 0 时再减保持 0，不会出现负数
	categoryRepo := repository.NewCategoryRepository(db)
	if err := categoryRepo.DecrementUsedCount([]uint{category.ID}); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if got := categoryUsedCount(t, db, category.ID); got != 0 {
		t.Fatalf("expected used count floored at 0, got %d", got)
	}

	if err := svc.Delete(blog.ID); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogGetPublishedIncrementsViews(t *testing.T) {
	svc, db := setupBlogServiceTest(t)
	author := createBlogTestAuthor(t, db)

	published, err := svc.Create(BlogInput{
		Title:    "Growing Chamomile At Home",
		AuthorID: author.ID,
		Status:   constants.BlogStatusPublished,
	})
	if err != nil {
		t.Fatalf("create blog failed: %v", err)
	}
	draft, err := svc.Create(BlogInput{
		Title:    "Unfinished Notes",
		AuthorID: author.ID,
		Status:   constants.BlogStatusDraft,
	})
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	got, err := svc.GetPublished(published.ID)
	if err != nil {
		t.Fatalf("get published failed: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("expected views 1, got %d", got.Views)
	}
	var stored models.Blog
	if err := db.First(&stored, published.ID).Error; err != nil {
		t.Fatalf("reload blog failed: %v", err)
	}
	if stored.Views != 1 {
		t.Fatalf("expected persisted views 1, got %d", stored.Views)
	}

	if _, err := svc.GetPublished(draft.ID); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("draft must not be visible, got %v", err)
	}
}

func TestBlogToggleStatus(t *testing.T) {
	svc, db := setupBlogServiceTest(t)
	author := createBlogTestAuthor(t, db)

	blog, err := svc.Create(BlogInput{
		Title:    "Unfinished Notes",
		AuthorID: author.ID,
		Status:   constants.BlogStatusDraft,
	})
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if blog.PublishedAt != nil {
		t.Fatal("draft must not carry a publish time")
	}

	published, err := svc.ToggleStatus(blog.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if published.Status != constants.BlogStatusPublished || published.PublishedAt == nil {
		t.Fatalf("expected published with publish time, got %+v", published)
	}

	back, err := svc.ToggleStatus(blog.ID)
	if err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	if back.Status != constants.BlogStatusDraft {
		t.Fatalf("expected draft, got %q", back.Status)
	}

	// 再次发布沿用首次发布时间
	past := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&models.Blog{}).Where("id = ?", blog.ID).Update("published_at", past).Error; err != nil {
		t.Fatalf("backdate publish time failed: %v", err)
	}
	again, err := svc.ToggleStatus(blog.ID)
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Before(time.Now().Add(-24*time.Hour)) {
		t.Fatalf("expected original publish time kept, got %v", again.PublishedAt)
	}

	if _, err := svc.ToggleStatus(9999); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestBlogToggleFlags(t *testing.T) {
	svc, db := setupBlogServiceTest(t)
	author := createBlogTestAuthor(t, db)

	blog, err := svc.Create(BlogInput{
		Title:    "Growing Chamomile At Home",
		AuthorID: author.ID,
		Status:   constants.BlogStatusPublished,
	})
	if err != nil {
		t.Fatalf("create blog failed: %v", err)
	}

	featured, err := svc.ToggleFeatured(blog.ID)
	if err != nil {
		t.Fatalf("toggle featured failed: %v", err)
	}
	if !featured.Featured {
		t.Fatal("expected featured flag set")
	}
	featured, err = svc.ToggleFeatured(blog.ID)
	if err != nil {
		t.Fatalf("toggle featured back failed: %v", err)
	}
	if featured.Featured {
		t.Fatal("expected featured flag cleared")
	}

	popular, err := svc.TogglePopular(blog.ID)
	if err != nil {
		t.Fatalf("toggle popular failed: %v", err)
	}
	if !popular.Popular {
		t.Fatal("expected popular flag set")
	}

	if _, err := svc.ToggleFeatured(9999); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
	if _, err := svc.TogglePopular(9999); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected ErrBlogNotFound, got %v", err)
	}
}

func TestGenerateSlug(t *testing.T) {
	slug := generateSlug("  Growing Chamomile, At Home!  ")
	if slug == "" {
		t.Fatal("expected non-empty slug")
	}
	prefix := "growing-chamomile-at-home-"
	if len(slug) <= len(prefix) || slug[:len(prefix)] != prefix {
		t.Fatalf("unexpected slug %q", slug)
	}

	if s := generateSlug("!!!"); len(s) < len("blog-") || s[:5] != "blog-" {
		t.Fatalf("expected fallback slug, got %q", s)
	}
}
