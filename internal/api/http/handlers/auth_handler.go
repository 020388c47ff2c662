package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/modular-api/internal/api/dto"
	"github.com/spec-kit/modular-api/internal/service"
)

// AuthHandler exposes registration, token and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Token handles POST /auth/token with a form-encoded password grant.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	token, _, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
