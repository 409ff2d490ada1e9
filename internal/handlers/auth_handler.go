package handlers

import (
	"fmt"
	"log"

	"newpack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes. They are public.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/refresh", h.HandleRefresh)
	authRoutes.Delete("/refresh", h.HandleRevoke)
}

// LoginRequest represents the request body for login. Name may also be the full name.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries an opaque refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// HandleLogin handles user login and issues a token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	pair, err := h.authService.Login(c.UserContext(), req.Name, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Name, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       fmt.Sprintf("User %s logged in successfully", pair.UserName),
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user_id":       pair.UserID,
	})
}

// HandleRefresh exchanges a refresh token for a new pair.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	pair, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Token refreshed successfully",
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user_id":       pair.UserID,
	})
}

// HandleRevoke deletes a refresh token.
func (h *AuthHandler) HandleRevoke(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.Revoke(c.UserContext(), req.RefreshToken); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Token deleted successfully"})
}
