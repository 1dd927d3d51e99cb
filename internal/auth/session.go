package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated-identity value decoded from a validated
// token. It is immutable and threaded through guards as a parameter; the
// middleware stores it in the request context under the configured key.
type Session struct {
	UserID    uuid.UUID
	Admin     bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewSessionFromClaims builds a Session from validated claims.
func NewSessionFromClaims(claims *Claims) (*Session, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, ErrTokenMalformed
	}

	return &Session{
		UserID:    userID,
		Admin:     claims.IsAdmin(),
		IssuedAt:  claims.IssuedAt(),
		ExpiresAt: claims.Expires(),
	}, nil
}

// IsAdmin reports the role flag carried by the session token.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Admin
}

// IsOwner reports whether the session belongs to the given account.
func (s *Session) IsOwner(id uuid.UUID) bool {
	return s != nil && s.UserID == id
}

func (s Session) String() string {
	return fmt.Sprintf("user=%s admin=%t iat=%s", s.UserID, s.Admin, s.IssuedAt.Format(time.RFC1123))
}
