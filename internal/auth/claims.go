package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the signed token claims: registered claims plus the subject id
// and the role flag distinguishing ordinary users from administrators.
type Claims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid,omitempty"`
	Admin bool   `json:"admin,omitempty"`
}

// UserID returns the subject id, preferring the uid claim.
func (c *Claims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// IsAdmin returns the role flag.
func (c *Claims) IsAdmin() bool {
	return c.Admin
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
