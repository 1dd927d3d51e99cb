package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeUnauthenticated    = "unauthenticated"
	TextCodeTokenExpired       = "token_expired"
	TextCodeTokenMalformed     = "token_malformed"
	TextCodeForbidden          = "forbidden"
	TextCodeInvalidCredentials = "invalid_credentials"
	TextCodeValidation         = "validation_error"
)

// ErrUnauthenticated is returned when a request carries no usable session
// token. The message mirrors the verifier's single user-visible answer.
var ErrUnauthenticated = errors.New("Unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for tokens past their expiration, regardless
// of signature validity.
var ErrTokenExpired = errors.New("Unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail to parse or verify.
var ErrTokenMalformed = errors.New("Unauthorized", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned on signin for unknown emails and wrong
// passwords alike; the two cases are indistinguishable to the client.
// Surfaced as 404 to match the public API contract.
var ErrInvalidCredentials = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects hashing of empty passwords; field validation
// upstream normally prevents this from being reached.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeValidation).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the only signal a failed comparison
// produces; digests are never compared for equality directly.
var ErrMismatchedHashAndPassword = errors.New("mismatched password and hash", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// Forbidden builds a 403 authorization error with a route-specific message.
func Forbidden(message string) *errors.Error {
	return errors.New(message, errors.CategoryAuthz).
		WithTextCode(TextCodeForbidden).
		WithCode(errors.CodeForbidden)
}

// Validation builds a 400 field-validation error.
func Validation(message string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithTextCode(TextCodeValidation).
		WithCode(errors.CodeBadRequest)
}
