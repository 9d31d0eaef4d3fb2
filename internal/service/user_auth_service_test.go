package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abdopcnet/payments/internal/config"
	"github.com/abdopcnet/payments/internal/constants"
	"github.com/abdopcnet/payments/internal/models"
	"github.com/abdopcnet/payments/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "user-auth-test-secret-key-0123456789abcdef"
	cfg.UserJWT.ExpireHours = 24
	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func createAuthTestUser(t *testing.T, db *gorm.DB, email, password, status string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Status:       status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestUserAuthServiceLogin(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	created := createAuthTestUser(t, db, "login@example.com", "secret-pw", constants.UserStatusActive)

	user, token, expiresAt, err := svc.Login("  Login@Example.com ", "secret-pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %v", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.UserID != created.ID || claims.Email != created.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUserAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	createAuthTestUser(t, db, "badpw@example.com", "right-pw", constants.UserStatusActive)

	if _, _, _, err := svc.Login("badpw@example.com", "wrong-pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login("ghost@example.com", "any"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserAuthServiceLoginRejectsDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)
	createAuthTestUser(t, db, "disabled@example.com", "secret-pw", constants.UserStatusDisabled)

	if _, _, _, err := svc.Login("disabled@example.com", "secret-pw"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}
