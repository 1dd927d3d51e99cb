package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/inkpost/inkpost/internal/auth"
)

// AuthController serves signup, signin, and third-party signin.
type AuthController struct {
	accounts *Accounts
	cookies  sessionCookies
	logger   auth.Logger
}

// NewAuthController wires the auth routes controller.
func NewAuthController(accounts *Accounts, cookies sessionCookies, logger auth.Logger) *AuthController {
	return &AuthController{
		accounts: accounts,
		cookies:  cookies,
		logger:   logger,
	}
}

// SignupRequest payload
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Signup handles POST /api/auth/signup.
func (a *AuthController) Signup(c *fiber.Ctx) error {
	payload := new(SignupRequest)

	if err := c.BodyParser(payload); err != nil {
		a.logger.Error("signup parse payload", "error", err)
		return auth.Validation("All fields are required")
	}

	if err := payload.Validate(); err != nil {
		return auth.Validation("All fields are required")
	}

	if _, err := a.accounts.Signup(c.UserContext(), payload.Username, payload.Email, payload.Password); err != nil {
		return err
	}

	return c.JSON("Signup Successfully!")
}

// SigninRequest payload
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Signin handles POST /api/auth/signin. On success the token travels back
// as an HTTP-only cookie and the identity is returned without its hash.
func (a *AuthController) Signin(c *fiber.Ctx) error {
	payload := new(SigninRequest)

	if err := c.BodyParser(payload); err != nil {
		a.logger.Error("signin parse payload", "error", err)
		return auth.Validation("All fields are required")
	}

	if err := payload.Validate(); err != nil {
		return auth.Validation("All fields are required")
	}

	user, token, err := a.accounts.Signin(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	a.cookies.set(c, token)

	return c.JSON(user)
}

// GoogleRequest is the trusted third-party signin payload.
type GoogleRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl"`
}

// Validate will run validation rules
func (r GoogleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Name, validation.Required),
	)
}

// Google handles POST /api/auth/google with the same cookie contract as
// Signin; absent accounts are created on the fly.
func (a *AuthController) Google(c *fiber.Ctx) error {
	payload := new(GoogleRequest)

	if err := c.BodyParser(payload); err != nil {
		a.logger.Error("google signin parse payload", "error", err)
		return auth.Validation("All fields are required")
	}

	if err := payload.Validate(); err != nil {
		return auth.Validation("All fields are required")
	}

	user, token, err := a.accounts.ThirdPartySignin(c.UserContext(), payload.Email, payload.Name, payload.PhotoURL)
	if err != nil {
		return err
	}

	a.cookies.set(c, token)

	return c.JSON(user)
}
