package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/inkpost/inkpost/internal/auth"
)

var testSigningKey = []byte("test-signing-key")

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService(testSigningKey, 1, "inkpost", nil)
}

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
	}{
		{name: "Ordinary user", isAdmin: false},
		{name: "Administrator", isAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestTokenService()
			userID := uuid.New()

			token, err := ts.Generate(userID, tt.isAdmin)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := ts.Validate(token)
			assert.NoError(t, err)
			assert.Equal(t, userID.String(), claims.UserID())
			assert.Equal(t, tt.isAdmin, claims.IsAdmin())
			assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), time.Minute)
		})
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	ts := newTestTokenService()

	// Correctly signed but already expired.
	now := time.Now()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkpost",
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		UID: uuid.NewString(),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	assert.NoError(t, err)

	_, err = ts.Validate(raw)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	ts := newTestTokenService()
	other := auth.NewTokenService([]byte("a-different-key"), 1, "inkpost", nil)

	token, err := other.Generate(uuid.New(), false)
	assert.NoError(t, err)

	_, err = ts.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsMissingExpiration(t *testing.T) {
	ts := newTestTokenService()

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  "inkpost",
			Subject: uuid.NewString(),
		},
		UID: uuid.NewString(),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	assert.NoError(t, err)

	_, err = ts.Validate(raw)
	assert.Error(t, err)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	ts := newTestTokenService()

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkpost",
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = ts.Validate(raw)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	ts := newTestTokenService()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := ts.Validate(raw)
		assert.Error(t, err)
	}
}
