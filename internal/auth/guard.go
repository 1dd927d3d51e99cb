package auth

import "github.com/google/uuid"

// Guard checks run after the token verifier has produced a Session. They
// are pure: the session arrives as a parameter, never as shared request
// state, and a violation is always a 403.

// CanUpdateAccount allows a user to update only their own account.
func CanUpdateAccount(s *Session, target uuid.UUID) error {
	if s.IsOwner(target) {
		return nil
	}
	return Forbidden("You are not allowed to update this user")
}

// CanDeleteAccount allows self-deletion, or any deletion by an admin.
func CanDeleteAccount(s *Session, target uuid.UUID) error {
	if s.IsOwner(target) || s.IsAdmin() {
		return nil
	}
	return Forbidden("You are not allowed to delete this user")
}

// CanCreatePost restricts post authoring to admins.
func CanCreatePost(s *Session) error {
	if s.IsAdmin() {
		return nil
	}
	return Forbidden("You are not allowed to create a post")
}

// CanModifyPost requires admin AND a matching owner id. Stricter than the
// usual owner-or-admin rule; kept as observed in production.
func CanModifyPost(s *Session, owner uuid.UUID) error {
	if s.IsAdmin() && s.IsOwner(owner) {
		return nil
	}
	return Forbidden("You are not allowed to modify this post")
}

// CanModerateComment allows the comment author or any admin.
func CanModerateComment(s *Session, author uuid.UUID) error {
	if s.IsOwner(author) || s.IsAdmin() {
		return nil
	}
	return Forbidden("You are not allowed to modify this comment")
}

// CanListAccounts gates the moderation views over all accounts or all
// comments.
func CanListAccounts(s *Session) error {
	if s.IsAdmin() {
		return nil
	}
	return Forbidden("You are not allowed to see this resource")
}
