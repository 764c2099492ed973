package handlers

import (
	"time"

	"github.com/familyshare/family-share-backend/internal/auth"
	"github.com/familyshare/family-share-backend/internal/config"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) CreateAccount(c *fiber.Ctx) error {
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.authService.Register(&req); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *AuthHandler) AuthenticateWithPassword(c *fiber.Ctx) error {
	var req dto.PasswordAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	token, err := h.authService.LoginWithPassword(&req)
	if err != nil {
		return respondError(c, err)
	}

	h.setTokenCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: token})
}

func (h *AuthHandler) AuthenticateWithGoogle(c *fiber.Ctx) error {
	var req dto.GoogleAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	token, err := h.authService.LoginWithGoogle(c.Context(), req.Code)
	if err != nil {
		return respondError(c, err)
	}

	h.setTokenCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: token})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	user, err := h.authService.Profile(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.ProfileResponse{
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
		},
	})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWTExpiry),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
