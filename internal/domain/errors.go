package domain

import "errors"

var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidPostKind   = errors.New("invalid post kind")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrEmailTaken        = errors.New("email address already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrEmailNotFound     = errors.New("email address not found")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
	ErrAlreadyLiked      = errors.New("post already liked by the user")
)
