package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emberworks/studio-portal/internal/api/dto"
	"github.com/emberworks/studio-portal/internal/auth"
	"github.com/emberworks/studio-portal/internal/service"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	auth          *service.AuthService
	cookieName    string
	secureCookies bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieName string, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: authService, cookieName: cookieName, secureCookies: secureCookies}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
		},
	})
}

// Login handles POST /api/auth/login. On success the session token is set
// as an http-only cookie; the body never carries it.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Email, req.Password, c.IP())
	if err != nil {
		return err
	}

	c.Cookie(auth.SessionCookie(h.cookieName, token, expiresAt, h.secureCookies))
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
			},
			"expiresAt": expiresAt,
		},
	})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
// Tokens are stateless, so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(auth.ClearSessionCookie(h.cookieName, h.secureCookies))
	return c.JSON(fiber.Map{"data": fiber.Map{"loggedOut": true}})
}
