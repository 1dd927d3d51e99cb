package repository

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeUserNotFound    = "user_not_found"
	TextCodePostNotFound    = "post_not_found"
	TextCodeCommentNotFound = "comment_not_found"
	TextCodeDuplicate       = "duplicate_record"
)

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrPostNotFound is returned when no post matches the lookup.
var ErrPostNotFound = errors.New("Post not found", errors.CategoryNotFound).
	WithTextCode(TextCodePostNotFound).
	WithCode(errors.CodeNotFound)

// ErrCommentNotFound is returned when no comment matches the lookup.
var ErrCommentNotFound = errors.New("Comment not found", errors.CategoryNotFound).
	WithTextCode(TextCodeCommentNotFound).
	WithCode(errors.CodeNotFound)

// conflict wraps a store uniqueness violation, keeping the driver message.
func conflict(err error, message string) *errors.Error {
	return errors.Wrap(err, errors.CategoryConflict, message).
		WithTextCode(TextCodeDuplicate).
		WithCode(errors.CodeConflict)
}

// isUniqueViolation detects duplicate-key failures across drivers by
// message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
