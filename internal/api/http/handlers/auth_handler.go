package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	"github.com/spec-kit/resistance-admin/internal/auth"
	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/resources"
	"github.com/spec-kit/resistance-admin/internal/service"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

// AuthHandler serves the authority endpoints.
type AuthHandler struct {
	service *service.AuthService
	profile resources.ProfileService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, profile resources.ProfileService) *AuthHandler {
	return &AuthHandler{service: authService, profile: profile}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	token, exp, account, err := h.service.Login(c.UserContext(), req.Identifier, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"token":     token,
		"expiresAt": exp,
		"user": domain.User{
			Username:  account.Username,
			Email:     account.Email,
			Role:      account.Role,
			CreatedAt: account.CreatedAt,
		},
	})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.profile.Me(resources.WithActor(c.UserContext(), principal.Username))
	if err != nil {
		if !apperrors.HasCode(err, "NOT_FOUND") {
			return err
		}
		user = &domain.User{Username: principal.Username, Role: principal.Role}
	}
	return c.JSON(user)
}
