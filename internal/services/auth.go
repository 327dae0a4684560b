package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/internal/models"
	"github.com/openmelody/backend/internal/utils"
	"github.com/openmelody/backend/pkg/apperr"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Fullname string `json:"fullname" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpireAt     time.Time    `json:"expire_at"`
	User         *models.User `json:"user"`
}

// Register creates a user account and returns the new user id.
func (s *AuthService) Register(req *RegisterRequest) (string, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", apperr.Conflict("username already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:       models.NewID("user"),
		Username: req.Username,
		Password: hash,
		Fullname: req.Fullname,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", err
	}
	return user.ID, nil
}

// Login verifies credentials and issues an access token plus a refresh
// token. The refresh token is stored hashed.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	var user models.User
	err := s.db.First(&user, "username = ?", req.Username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, apperr.Forbidden("invalid credentials")
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Username, "user", s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(time.Duration(s.jwtConfig.RefreshTokenTTL) * time.Hour),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpireAt:     time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
		User:         &user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	var record models.RefreshToken
	err := s.db.First(&record, "token_hash = ?", hashToken(refreshToken)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.Forbidden("invalid refresh token")
	}
	if err != nil {
		return "", err
	}
	if time.Now().After(record.ExpiresAt) {
		return "", apperr.Forbidden("refresh token expired")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", record.UserID).Error; err != nil {
		return "", err
	}

	return utils.GenerateToken(user.ID, user.Username, "user", s.jwtConfig.ExpireHour)
}

// Logout revokes a refresh token.
func (s *AuthService) Logout(refreshToken string) error {
	result := s.db.Delete(&models.RefreshToken{}, "token_hash = ?", hashToken(refreshToken))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("refresh token not found")
	}
	return nil
}

// GetUserByID returns a user for display purposes.
func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
