package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/repository"
)

// UserController serves account management and moderation routes.
type UserController struct {
	accounts   *Accounts
	users      repository.Users
	cookies    sessionCookies
	contextKey string
	logger     auth.Logger
}

// NewUserController wires the user routes controller.
func NewUserController(accounts *Accounts, users repository.Users, cookies sessionCookies, contextKey string, logger auth.Logger) *UserController {
	return &UserController{
		accounts:   accounts,
		users:      users,
		cookies:    cookies,
		contextKey: contextKey,
		logger:     logger,
	}
}

// UpdateUserRequest carries the optional profile fields. Rules only fire on
// fields that were supplied.
type UpdateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
}

// Validate will run validation rules
func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Length(4, 20).Error("Username must be between 4 and 20 characters"),
			is.LowerCase.Error("Username must be lowercase"),
			is.Alphanumeric.Error("Username can only contain letters and numbers"),
		),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Password,
			validation.Length(6, 0).Error("Password must be at least 6 characters"),
		),
	)
}

// Update handles PUT /api/user/update/:userId. Self only.
func (u *UserController) Update(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, u.contextKey)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return auth.Validation("Invalid user id")
	}

	if err := auth.CanUpdateAccount(session, targetID); err != nil {
		return err
	}

	payload := new(UpdateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		u.logger.Error("update user parse payload", "error", err)
		return auth.Validation("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return auth.Validation(firstValidationMessage(err))
	}

	updated, err := u.accounts.Update(c.UserContext(), targetID, UpdateParams{
		Username:       payload.Username,
		Email:          payload.Email,
		Password:       payload.Password,
		ProfilePicture: payload.ProfilePicture,
	})
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Delete handles DELETE /api/user/delete/:userId. Self or admin.
func (u *UserController) Delete(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, u.contextKey)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return auth.Validation("Invalid user id")
	}

	if err := auth.CanDeleteAccount(session, targetID); err != nil {
		return err
	}

	if err := u.accounts.Delete(c.UserContext(), targetID); err != nil {
		return err
	}

	return c.JSON("User has been deleted")
}

// Signout handles POST /api/user/signout. Stateless beyond the cookie: the
// token itself stays valid until it expires.
func (u *UserController) Signout(c *fiber.Ctx) error {
	u.cookies.clear(c)
	return c.JSON("Signout successful")
}

// GetUsers handles GET /api/user/getusers, the admin moderation view.
func (u *UserController) GetUsers(c *fiber.Ctx) error {
	session, err := auth.SessionFrom(c, u.contextKey)
	if err != nil {
		return err
	}

	if err := auth.CanListAccounts(session); err != nil {
		return err
	}

	opts := listOptionsFromQuery(c)

	users, total, err := u.users.List(c.UserContext(), opts)
	if err != nil {
		return err
	}

	lastMonth, err := u.users.CountCreatedSince(c.UserContext(), time.Now().AddDate(0, -1, 0))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"users":          users,
		"totalUsers":     total,
		"lastMonthUsers": lastMonth,
	})
}

// GetUser handles GET /api/user/:userId, a public profile read.
func (u *UserController) GetUser(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return auth.Validation("Invalid user id")
	}

	user, err := u.users.GetByID(c.UserContext(), targetID)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// listOptionsFromQuery reads the shared pagination query parameters.
func listOptionsFromQuery(c *fiber.Ctx) repository.ListOptions {
	return repository.ListOptions{
		Offset:    c.QueryInt("startIndex", 0),
		Limit:     c.QueryInt("limit", 9),
		Ascending: c.Query("sort") == "asc",
	}
}
