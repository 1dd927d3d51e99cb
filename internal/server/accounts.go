package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/model"
	"github.com/inkpost/inkpost/internal/repository"
)

// Accounts orchestrates signup, signin, third-party signin, update, and
// deletion. Tokens are issued here; cookies are a transport concern handled
// by the controller.
type Accounts struct {
	users  repository.Users
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger auth.Logger
}

// NewAccounts wires the account service.
func NewAccounts(users repository.Users, hasher *auth.Hasher, tokens *auth.TokenService, logger auth.Logger) *Accounts {
	return &Accounts{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Signup hashes the password and persists a new account. Duplicate username
// or email surfaces as a conflict from the repository.
func (s *Accounts) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		ProfilePicture: model.DefaultProfilePicture,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error("signup persist error", "error", err)
		return nil, err
	}

	return created, nil
}

// Signin verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Accounts) Signin(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		s.logger.Error("signin lookup error", "error", err)
		return nil, "", err
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error("signin token error", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// ThirdPartySignin finds the account by email or creates one with a
// synthesized username and a random, unusable password, then issues a token.
func (s *Accounts) ThirdPartySignin(ctx context.Context, email, name, photoURL string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("third-party signin lookup error", "error", err)
			return nil, "", err
		}

		picture := photoURL
		if picture == "" {
			picture = model.DefaultProfilePicture
		}

		user, err = s.users.Create(ctx, &model.User{
			Username:       synthesizeUsername(name),
			Email:          email,
			PasswordHash:   s.hasher.RandomPasswordHash(),
			ProfilePicture: picture,
		})
		if err != nil {
			s.logger.Error("third-party signin create error", "error", err)
			return nil, "", err
		}
	}

	token, err := s.tokens.Generate(user.ID, user.IsAdmin)
	if err != nil {
		s.logger.Error("third-party signin token error", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// UpdateParams are the optional account fields a profile update may change.
type UpdateParams struct {
	Username       string
	Email          string
	Password       string
	ProfilePicture string
}

// Update applies the supplied fields to an existing account, re-hashing the
// password when one is given.
func (s *Accounts) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Username != "" {
		user.Username = params.Username
	}
	if params.Email != "" {
		user.Email = params.Email
	}
	if params.ProfilePicture != "" {
		user.ProfilePicture = params.ProfilePicture
	}
	if params.Password != "" {
		hash, err := s.hasher.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		s.logger.Error("account update error", "error", err)
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes the account. Posts and comments referencing it
// are left in place.
func (s *Accounts) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// synthesizeUsername squashes a display name into a lowercase handle with a
// random numeric suffix to dodge collisions.
func synthesizeUsername(name string) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if base == "" {
		base = "user"
	}
	return fmt.Sprintf("%s%04d", base, rand.IntN(10000))
}
