package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// DefaultContextKey is where the middleware stores the decoded Session.
const DefaultContextKey = "access_token"

// MiddlewareConfig configures the token verifier middleware.
type MiddlewareConfig struct {
	// Validator checks inbound tokens. Required.
	Validator TokenValidator
	// ContextKey is the Locals key for the Session and the cookie name the
	// token is read from. Defaults to DefaultContextKey.
	ContextKey string
	// Filter skips verification when it returns true.
	Filter func(*fiber.Ctx) bool
	// ErrorHandler receives rejection errors. The default answers 401 with
	// the contract's {statusCode, message} body.
	ErrorHandler fiber.ErrorHandler
	// Logger defaults to the package fallback.
	Logger Logger
}

// Protected returns the single mandatory gate in front of every mutating or
// privileged route. Missing, invalid, or expired tokens are rejected with
// 401; on success the decoded Session continues down the chain in Locals.
func Protected(config ...MiddlewareConfig) fiber.Handler {
	cfg := MiddlewareConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.Logger == nil {
		cfg.Logger = defLogger{}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultAuthErrorHandler
	}
	if cfg.Validator == nil {
		panic("auth: Protected requires a TokenValidator")
	}

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw := extractToken(c, cfg.ContextKey)
		if raw == "" {
			return cfg.ErrorHandler(c, ErrUnauthenticated)
		}

		claims, err := cfg.Validator.Validate(raw)
		if err != nil {
			cfg.Logger.Debug("token rejected", "error", err)
			return cfg.ErrorHandler(c, err)
		}

		session, err := NewSessionFromClaims(claims)
		if err != nil {
			cfg.Logger.Error("could not build session from claims", "error", err)
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, session)

		return c.Next()
	}
}

// defaultAuthErrorHandler answers every rejection uniformly; clients learn
// nothing about why a token failed.
func defaultAuthErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	message := "Unauthorized"

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		if richErr.Code != 0 {
			status = richErr.Code
		}
		if richErr.Message != "" {
			message = richErr.Message
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"message":    message,
	})
}

// SessionFrom retrieves the Session the middleware stored for this request.
func SessionFrom(c *fiber.Ctx, key string) (*Session, error) {
	if key == "" {
		key = DefaultContextKey
	}

	val := c.Locals(key)
	if val == nil {
		return nil, ErrUnauthenticated
	}

	session, ok := val.(*Session)
	if !ok || session == nil {
		return nil, ErrUnauthenticated
	}

	return session, nil
}

// extractToken prefers the session cookie, falling back to a bearer header
// for API clients.
func extractToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}

	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}

	return ""
}
