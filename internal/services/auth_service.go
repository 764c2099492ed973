package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/familyshare/family-share-backend/internal/config"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	google GoogleVerifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		google: NewGoogleOAuthClient(cfg),
	}
}

// Register creates a password-based account. Email uniqueness is
// checked here and backed by the unique index on users.email.
func (s *AuthService) Register(req *dto.CreateAccountRequest) error {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	password := string(hash)
	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: &password,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// LoginWithPassword authenticates by email and password and returns a
// signed session token.
func (s *AuthService) LoginWithPassword(req *dto.PasswordAuthRequest) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if user.Password == nil {
		return "", ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.signToken(&user)
}

// LoginWithGoogle exchanges an OAuth authorization code, finds or
// creates the matching account, and returns a signed session token.
// Accounts that already set a password must use password login.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (string, error) {
	info, err := s.google.Verify(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google authentication failed: %w", err)
	}

	var user models.User
	err = s.db.Where("email = ?", info.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:        uuid.New(),
			Name:      info.Name,
			Email:     info.Email,
			GoogleID:  &info.Subject,
			AvatarURL: &info.Picture,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return "", fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Password != nil {
		return "", ErrPasswordAlreadySet
	}

	return s.signToken(&user)
}

// Profile returns the account behind a user id.
func (s *AuthService) Profile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
