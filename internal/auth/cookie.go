package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie builds the cookie carrying the session token: http-only,
// same-site strict, secure outside development, root path.
func SessionCookie(name, token string, expiresAt time.Time, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    token,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(name string, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
