package services

import (
	"testing"
	"time"

	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/internal/utils"
	"github.com/openmelody/backend/pkg/apperr"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:          "test-secret",
		ExpireHour:      1,
		RefreshTokenTTL: 24,
	}
}

func TestAuthRegister_CreatesUser(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	svc := NewAuthService(db, testJWTConfig())
	userID, err := svc.Register(&RegisterRequest{
		Username: "newuser",
		Password: "secret123",
		Fullname: "New User",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if userID == "" {
		t.Error("expected non-empty user id")
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthRegister_DuplicateUsernameConflicts(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	svc := NewAuthService(db, testJWTConfig())
	req := &RegisterRequest{Username: "taken", Password: "secret123", Fullname: "First"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(req)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("duplicate username should conflict, got %v", err)
	}
}

func TestAuthLogin_IssuesTokens(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	svc := NewAuthService(db, testJWTConfig())
	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret123", Fullname: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(&LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}

	claims, err := utils.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("claims username = %q", claims.Username)
	}

	// The stored refresh token must be a hash, not the token itself.
	var record models.RefreshToken
	if err := db.First(&record).Error; err != nil {
		t.Fatalf("load refresh token: %v", err)
	}
	if record.TokenHash == result.RefreshToken {
		t.Error("refresh token must be stored hashed")
	}
}

func TestAuthLogin_WrongPasswordForbidden(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	svc := NewAuthService(db, testJWTConfig())
	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret123", Fullname: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(&LoginRequest{Username: "alice", Password: "wrong"})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("wrong password should be forbidden, got %v", err)
	}
}

func TestAuthRefresh_IssuesNewAccessToken(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	svc := NewAuthService(db, testJWTConfig())
	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret123", Fullname: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(&LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	accessToken, err := svc.Refresh(result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := utils.ParseToken(accessToken); err != nil {
		t.Errorf("refreshed token should parse, got %v", err)
	}
}

func TestAuthRefresh_ExpiredTokenForbidden(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	user := createTestUser(t, db, "alice")
	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken("stale-token"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed token: %v", err)
	}

	svc := NewAuthService(db, testJWTConfig())
	_, err := svc.Refresh("stale-token")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expired refresh token should be forbidden, got %v", err)
	}
}

func TestAuthLogout_RevokesToken(t *testing.T) {
	db := newTestDB(t)
	utils.SetJWTSecret("test-secret")

	svc := NewAuthService(db, testJWTConfig())
	if _, err := svc.Register(&RegisterRequest{Username: "alice", Password: "secret123", Fullname: "Alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(&LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(result.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, err = svc.Refresh(result.RefreshToken)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("revoked token should be forbidden, got %v", err)
	}

	if err := svc.Logout(result.RefreshToken); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second logout should be not-found, got %v", err)
	}
}
