package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// sessionCookies writes and clears the HTTP-only session cookie. One policy
// everywhere: HttpOnly always, Secure and SameSite=Strict outside local
// development.
type sessionCookies struct {
	name     string
	duration time.Duration
	secure   bool
}

func newSessionCookies(name string, duration time.Duration, secure bool) sessionCookies {
	if name == "" {
		name = "access_token"
	}
	if duration <= 0 {
		duration = time.Hour
	}
	return sessionCookies{name: name, duration: duration, secure: secure}
}

func (s sessionCookies) set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    token,
		Expires:  time.Now().Add(s.duration),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (s sessionCookies) clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
