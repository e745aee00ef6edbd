package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/goserg/storeserver/auth/users"
	"github.com/goserg/storeserver/internal/mail"
	"github.com/goserg/storeserver/internal/normalize"
)

// Forgot starts the reset flow: issue a token for the account and email a
// reset link. An unknown email gets an explicit ErrNoAccount. A mail failure
// leaves the token issued and is reported as ErrMailDelivery so the caller
// can tell it apart.
func (s *Service) Forgot(ctx context.Context, email string, host string) error {
	user, err := s.storage.GetUserByEmail(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoAccount
		}
		return err
	}
	token, expires, err := s.IssueResetToken(ctx, user)
	if err != nil {
		return err
	}
	resetURL := "http://" + host + "/account/reset/" + token
	err = s.mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: "Password reset",
		Text: "Hi " + user.Name + ",\n\n" +
			"You requested a password reset. Visit the link below within one hour to set a new password:\n\n" +
			resetURL + "\n\n" +
			"If you did not request this, ignore this email and your password will stay unchanged.\n",
	})
	if err != nil {
		s.log.WithError(err).WithField("user", user.ID).Error("reset mail delivery failed")
		return ErrMailDelivery
	}
	s.log.WithField("user", user.ID).WithField("expires", expires).Info("reset token issued")
	return nil
}

// ValidateResetToken resolves a presented token at the given instant. A miss
// and an expired token are the same outcome.
func (s *Service) ValidateResetToken(ctx context.Context, token string, now time.Time) (users.User, error) {
	user, err := s.storage.FindByResetToken(ctx, token, now.UnixMilli())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrTokenInvalidOrExpired
		}
		return users.User{}, err
	}
	return user, nil
}

// ResetPassword consumes the token: the new credential material is written
// and both token columns cleared in the same conditional update, then the
// user is logged in. The confirmation check runs before any storage call.
func (s *Service) ResetPassword(ctx context.Context, token string, now time.Time, password, passwordConfirm string) (users.User, *fiber.Cookie, error) {
	if password != passwordConfirm {
		return users.User{}, nil, ErrPasswordMismatch
	}
	salt, err := randomSalt()
	if err != nil {
		return users.User{}, nil, err
	}
	secret := generateSecret(password, s.cfg.PasswordPepper, salt)
	user, err := s.storage.ConsumePasswordReset(ctx, token, now.UnixMilli(), secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, nil, ErrTokenInvalidOrExpired
		}
		return users.User{}, nil, err
	}
	return s.startSession(ctx, user)
}
