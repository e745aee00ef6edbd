package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/auth/storage"
	"github.com/goserg/storeserver/auth/users"
	"github.com/goserg/storeserver/internal/mail"
	"github.com/goserg/storeserver/internal/normalize"
)

type Service struct {
	storage storage.AuthStorage
	mailer  mail.Mailer
	cfg     Config
	log     *logrus.Entry
}

func New(cfg Config, st storage.AuthStorage, mailer mail.Mailer, l *logrus.Logger) *Service {
	return &Service{
		cfg:     cfg,
		storage: st,
		mailer:  mailer,
		log: l.WithFields(map[string]interface{}{
			"from": "auth-service",
		}),
	}
}

// SignUp validates the registration form, creates the user and logs them in.
func (s *Service) SignUp(ctx context.Context, email, name, password, passwordConfirm string) (users.User, *fiber.Cookie, error) {
	if err := ValidateRegistration(name, email, password, passwordConfirm); err != nil {
		return users.User{}, nil, err
	}
	salt, err := randomSalt()
	if err != nil {
		return users.User{}, nil, err
	}
	user := users.User{
		ID:           uuid.New(),
		Email:        normalize.Email(email),
		Name:         strings.TrimSpace(name),
		RegisteredAt: time.Now(),
	}
	secret := generateSecret(password, s.cfg.PasswordPepper, salt)
	if err := s.storage.CreateUser(ctx, user, secret); err != nil {
		return users.User{}, nil, err
	}
	return s.startSession(ctx, user)
}

// Login verifies the credentials and establishes a session. Unknown email
// and wrong password produce the same outcome.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, *fiber.Cookie, error) {
	user, secret, err := s.storage.GetUserSecret(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, nil, ErrInvalidCredentials
		}
		return users.User{}, nil, err
	}
	if !verifySecret(password, s.cfg.PasswordPepper, secret) {
		return users.User{}, nil, ErrInvalidCredentials
	}
	return s.startSession(ctx, user)
}

// Logout destroys the session the cookie points at. A missing, malformed or
// already-destroyed session is not an error.
func (s *Service) Logout(ctx context.Context, cookie string) error {
	sessionID, err := s.sessionIDFromToken(cookie)
	if err != nil {
		return nil
	}
	return s.storage.DeleteSession(ctx, sessionID)
}

// Auth resolves the session cookie to a user. It is the gate in front of
// every protected operation.
func (s *Service) Auth(ctx context.Context, cookie string) (users.User, error) {
	sessionID, err := s.sessionIDFromToken(cookie)
	if err != nil {
		return users.User{}, ErrNotAuthorized
	}
	session, user, err := s.storage.GetSession(ctx, sessionID)
	if err != nil {
		return users.User{}, ErrNotAuthorized
	}
	if time.Now().After(session.ExpiresAt) {
		return users.User{}, ErrNotAuthorized
	}
	return user, nil
}

// UpdateAccount applies name/email edits for the account owner.
func (s *Service) UpdateAccount(ctx context.Context, userID uuid.UUID, name, email string) error {
	name = strings.TrimSpace(name)
	email = normalize.Email(email)
	if name == "" {
		return errors.New("you must supply a name")
	}
	if !emailRegexp.MatchString(email) {
		return errors.New("that email is not valid")
	}
	return s.storage.UpdateUser(ctx, userID, name, email)
}

func (s *Service) startSession(ctx context.Context, user users.User) (users.User, *fiber.Cookie, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Expiration)
	if err != nil {
		return users.User{}, nil, err
	}
	now := time.Now()
	session := users.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
	if err := s.storage.CreateSession(ctx, session); err != nil {
		return users.User{}, nil, err
	}
	cookie, err := s.generateJWTCookie(session)
	if err != nil {
		return users.User{}, nil, err
	}
	return user, cookie, nil
}

// generateJWTCookie wraps the session id in a signed token. The session row
// stays authoritative, the cookie is only the envelope.
func (s *Service) generateJWTCookie(session users.Session) (*fiber.Cookie, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: session.ExpiresAt.Unix(),
		IssuedAt:  session.CreatedAt.Unix(),
		Subject:   session.ID.String(),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Token))
	if err != nil {
		return nil, err
	}
	return &fiber.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
	}, nil
}

func (s *Service) sessionIDFromToken(cookie string) (uuid.UUID, error) {
	if cookie == "" {
		return uuid.Nil, ErrNotAuthorized
	}
	token, err := jwt.ParseWithClaims(cookie, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Token), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, ErrNotAuthorized
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok {
		return uuid.Nil, ErrNotAuthorized
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
