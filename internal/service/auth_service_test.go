package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bloomcart/internal/identity"
	"github.com/bloomcart/internal/models"
	"github.com/bloomcart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewAuthService(repository.NewUserRepository(db)), db
}

func testClaims(subject string) *identity.Claims {
	return &identity.Claims{
		Subject:        subject,
		Email:          subject + "@example.com",
		EmailVerified:  true,
		SignInProvider: "password",
	}
}

func TestRegisterAndDuplicate(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	claims := testClaims("uid-1")

	user, err := svc.Register(claims, RegisterInput{FullName: "  Maya Fernandes  ", PhoneNumber: "9876543210"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.FullName != "Maya Fernandes" {
		t.Fatalf("expected trimmed full name, got %q", user.FullName)
	}
	if user.ProviderUID != "uid-1" || user.Email != "uid-1@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PhoneNumber != "9876543210" {
		t.Fatalf("expected phone from input, got %q", user.PhoneNumber)
	}

	if _, err := svc.Register(claims, RegisterInput{}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := svc.Register(nil, RegisterInput{}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for nil claims, got %v", err)
	}
}

func TestLoginNotRegistered(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Login(testClaims("uid-unknown")); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLoginRefreshesClaims(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Register(testClaims("uid-1"), RegisterInput{}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed := testClaims("uid-1")
	refreshed.Email = "renamed@example.com"
	user, err := svc.Login(refreshed)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "renamed@example.com" {
		t.Fatalf("expected email refreshed from claims, got %q", user.Email)
	}
	if user.LastLoginAt == nil {
		t.Fatal("expected last login timestamp set")
	}
}

func TestResolveBlockedAndDeleted(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user, err := svc.Register(testClaims("uid-1"), RegisterInput{})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_blocked", true).Error; err != nil {
		t.Fatalf("block user failed: %v", err)
	}
	if _, err := svc.Resolve(testClaims("uid-1")); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}

	// 注销优先于封禁
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_deleted", true).Error; err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if _, err := svc.Resolve(testClaims("uid-1")); !errors.Is(err, ErrUserDeleted) {
		t.Fatalf("expected ErrUserDeleted, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	user, err := svc.Register(testClaims("uid-1"), RegisterInput{FullName: "Maya", PhoneNumber: "9876543210"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Maya F."
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{FullName: &name})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FullName != "Maya F." {
		t.Fatalf("expected new full name, got %q", updated.FullName)
	}
	if updated.PhoneNumber != "9876543210" {
		t.Fatalf("nil phone field must leave value untouched, got %q", updated.PhoneNumber)
	}

	if _, err := svc.UpdateProfile(9999, UpdateProfileInput{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetBlockStatus(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	user, err := svc.Register(testClaims("uid-1"), RegisterInput{})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	blocked, err := svc.SetBlockStatus(user.ID, true)
	if err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if !blocked.IsBlocked {
		t.Fatal("expected user blocked")
	}
	if _, err := svc.Resolve(testClaims("uid-1")); !errors.Is(err, ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked after admin block, got %v", err)
	}

	unblocked, err := svc.SetBlockStatus(user.ID, false)
	if err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
	if unblocked.IsBlocked {
		t.Fatal("expected user unblocked")
	}
	if _, err := svc.Resolve(testClaims("uid-1")); err != nil {
		t.Fatalf("resolve after unblock failed: %v", err)
	}

	if _, err := svc.SetBlockStatus(9999, true); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	for i := 1; i <= 3; i++ {
		claims := testClaims(fmt.Sprintf("uid-%d", i))
		if _, err := svc.Register(claims, RegisterInput{FullName: fmt.Sprintf("User %d", i)}); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}
	blocked, err := svc.SetBlockStatus(2, true)
	if err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if err := svc.DeleteAccount(3); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}

	users, total, err := svc.ListUsers(repository.UserListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("expected 2 users excluding deleted, got total=%d len=%d", total, len(users))
	}

	flag := true
	users, total, err = svc.ListUsers(repository.UserListFilter{Page: 1, PageSize: 10, Blocked: &flag})
	if err != nil {
		t.Fatalf("list blocked users failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].ID != blocked.ID {
		t.Fatalf("expected only blocked user, got total=%d users=%+v", total, users)
	}

	users, total, err = svc.ListUsers(repository.UserListFilter{Page: 1, PageSize: 10, Search: "User 1"})
	if err != nil {
		t.Fatalf("list users by search failed: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].FullName != "User 1" {
		t.Fatalf("expected search to match one user, got total=%d users=%+v", total, users)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	user, err := svc.Register(testClaims("uid-1"), RegisterInput{})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.DeleteAccount(user.ID); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}
	if _, err := svc.Resolve(testClaims("uid-1")); !errors.Is(err, ErrUserDeleted) {
		t.Fatalf("expected ErrUserDeleted after account deletion, got %v", err)
	}

	if err := svc.DeleteAccount(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
