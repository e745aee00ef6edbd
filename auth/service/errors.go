package service

import "errors"

var (
	ErrNotAuthorized = errors.New("unauthorized")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// the caller must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrNoAccount = errors.New("no account with that email exists")

	// ErrTokenInvalidOrExpired covers both a token lookup miss and an
	// expired token, the caller must not be able to tell which.
	ErrTokenInvalidOrExpired = errors.New("password reset token is invalid or has expired")

	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrMailDelivery means the reset token was issued but the email did
	// not go out.
	ErrMailDelivery = errors.New("reset email delivery failed")
)
