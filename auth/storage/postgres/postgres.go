package postgres

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/url"
	"strconv"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/auth/service"
	"github.com/goserg/storeserver/auth/storage"
	"github.com/goserg/storeserver/auth/users"
	"github.com/goserg/storeserver/gen/auth/public/model"
	"github.com/goserg/storeserver/gen/auth/public/table"
)

const pgUniqueViolation = "23505"

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

func New(ctx context.Context, l *logrus.Logger, cfg service.Config) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "auth-storage",
	})
	db, err := sql.Open("pgx", NewURLConnectionString(
		"postgres",
		cfg.Storage.Host+":"+strconv.Itoa(cfg.Storage.Port),
		cfg.Storage.DBName,
		cfg.Storage.Username,
		cfg.Storage.Password,
	))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	log.Info("auth storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func NewURLConnectionString(scheme string, host string, dbName string, user string, password string) string {
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(user, password),
		Host:   host,
		Path:   dbName,
	}
	return u.String()
}

func (s *Storage) CreateUser(ctx context.Context, user users.User, secret users.Secret) error {
	dbUser := model.Users{
		ID:           user.ID.String(),
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: hex.EncodeToString(secret.PasswordHash),
		PasswordSalt: hex.EncodeToString(secret.Salt),
		CreatedAt:    user.RegisteredAt,
	}
	_, err := table.Users.
		INSERT(
			table.Users.ID,
			table.Users.Email,
			table.Users.Name,
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
			table.Users.CreatedAt,
		).
		MODEL(dbUser).
		ExecContext(ctx, s.db)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return storage.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
		)).
		FROM(table.Users).
		WHERE(table.Users.ID.EQ(postgres.String(id.String())).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUser(dbUser)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
		)).
		FROM(table.Users).
		WHERE(table.Users.Email.EQ(postgres.String(email)).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUser(dbUser)
}

func (s *Storage) GetUserSecret(ctx context.Context, email string) (users.User, users.Secret, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns).
		FROM(table.Users).
		WHERE(table.Users.Email.EQ(postgres.String(email)).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, users.Secret{}, sql.ErrNoRows
		}
		return users.User{}, users.Secret{}, err
	}
	u, err := convertUser(dbUser)
	if err != nil {
		return users.User{}, users.Secret{}, err
	}
	hash, err := hex.DecodeString(dbUser.PasswordHash)
	if err != nil {
		return users.User{}, users.Secret{}, err
	}
	salt, err := hex.DecodeString(dbUser.PasswordSalt)
	if err != nil {
		return users.User{}, users.Secret{}, err
	}
	return u, users.Secret{PasswordHash: hash, Salt: salt}, nil
}

func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, name string, email string) error {
	_, err := table.Users.
		UPDATE(table.Users.Name, table.Users.Email).
		SET(postgres.String(name), postgres.String(email)).
		WHERE(table.Users.ID.EQ(postgres.String(id.String()))).
		ExecContext(ctx, s.db)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return storage.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *Storage) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresMs int64) error {
	_, err := table.Users.
		UPDATE(table.Users.ResetToken, table.Users.ResetExpires).
		SET(postgres.String(token), postgres.Int(expiresMs)).
		WHERE(table.Users.ID.EQ(postgres.String(id.String()))).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) FindByResetToken(ctx context.Context, token string, nowMs int64) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
		)).
		FROM(table.Users).
		WHERE(resetTokenValid(token, nowMs)).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUser(dbUser)
}

func (s *Storage) ConsumePasswordReset(ctx context.Context, token string, nowMs int64, secret users.Secret) (users.User, error) {
	user, err := s.FindByResetToken(ctx, token, nowMs)
	if err != nil {
		return users.User{}, err
	}
	res, err := table.Users.
		UPDATE(
			table.Users.PasswordHash,
			table.Users.PasswordSalt,
			table.Users.ResetToken,
			table.Users.ResetExpires,
		).
		SET(
			postgres.String(hex.EncodeToString(secret.PasswordHash)),
			postgres.String(hex.EncodeToString(secret.Salt)),
			postgres.NULL,
			postgres.NULL,
		).
		WHERE(resetTokenValid(token, nowMs)).
		ExecContext(ctx, s.db)
	if err != nil {
		return users.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return users.User{}, err
	}
	if affected == 0 {
		return users.User{}, sql.ErrNoRows
	}
	return user, nil
}

func resetTokenValid(token string, nowMs int64) postgres.BoolExpression {
	return table.Users.ResetToken.EQ(postgres.String(token)).
		AND(table.Users.ResetExpires.GT(postgres.Int(nowMs))).
		AND(table.Users.DeletedAt.IS_NULL())
}

func (s *Storage) CreateSession(ctx context.Context, session users.Session) error {
	dbSession := model.Sessions{
		ID:        session.ID.String(),
		UserID:    session.UserID.String(),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	_, err := table.Sessions.
		INSERT(table.Sessions.AllColumns).
		MODEL(dbSession).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) GetSession(ctx context.Context, id uuid.UUID) (users.Session, users.User, error) {
	var dest struct {
		model.Sessions
		Users model.Users
	}
	err := table.Sessions.
		SELECT(
			table.Sessions.AllColumns,
			table.Users.AllColumns.Except(
				table.Users.PasswordHash,
				table.Users.PasswordSalt,
			),
		).
		FROM(table.Sessions.INNER_JOIN(table.Users, table.Users.ID.EQ(table.Sessions.UserID))).
		WHERE(table.Sessions.ID.EQ(postgres.String(id.String())).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.Session{}, users.User{}, sql.ErrNoRows
		}
		return users.Session{}, users.User{}, err
	}
	sessionID, err := uuid.Parse(dest.Sessions.ID)
	if err != nil {
		return users.Session{}, users.User{}, err
	}
	userID, err := uuid.Parse(dest.Sessions.UserID)
	if err != nil {
		return users.Session{}, users.User{}, err
	}
	u, err := convertUser(dest.Users)
	if err != nil {
		return users.Session{}, users.User{}, err
	}
	return users.Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: dest.Sessions.CreatedAt,
		ExpiresAt: dest.Sessions.ExpiresAt,
	}, u, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := table.Sessions.
		DELETE().
		WHERE(table.Sessions.ID.EQ(postgres.String(id.String()))).
		ExecContext(ctx, s.db)
	return err
}

func convertUser(user model.Users) (users.User, error) {
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return users.User{}, err
	}
	return users.User{
		ID:           id,
		Email:        user.Email,
		Name:         user.Name,
		RegisteredAt: user.CreatedAt,
	}, nil
}
