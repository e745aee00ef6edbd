package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	sqlite3driver "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/auth/gen/model"
	"github.com/goserg/storeserver/auth/gen/table"
	"github.com/goserg/storeserver/auth/service"
	"github.com/goserg/storeserver/auth/storage"
	"github.com/goserg/storeserver/auth/users"
	sqlite3 "github.com/goserg/storeserver/internal/migrate"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

func New(l *logrus.Logger, cfg service.Config) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "auth-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = sqlite3.UpAuthDB(db)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	log.Info("auth storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func (s *Storage) CreateUser(ctx context.Context, user users.User, secret users.Secret) error {
	dbUser := model.Users{
		ID:           user.ID.String(),
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: bytesToHex(secret.PasswordHash),
		PasswordSalt: bytesToHex(secret.Salt),
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
		var sqliteErr sqlite3driver.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3driver.ErrConstraint {
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
		WHERE(table.Users.ID.EQ(sqlite.UUID(id)).
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
		WHERE(table.Users.Email.EQ(sqlite.String(email)).
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
		WHERE(table.Users.Email.EQ(sqlite.String(email)).
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
	secret, err := convertSecret(dbUser)
	if err != nil {
		return users.User{}, users.Secret{}, err
	}
	return u, secret, nil
}

func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, name string, email string) error {
	_, err := table.Users.
		UPDATE(table.Users.Name, table.Users.Email).
		SET(sqlite.String(name), sqlite.String(email)).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
		ExecContext(ctx, s.db)
	if err != nil {
		var sqliteErr sqlite3driver.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3driver.ErrConstraint {
			return storage.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *Storage) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresMs int64) error {
	_, err := table.Users.
		UPDATE(table.Users.ResetToken, table.Users.ResetExpires).
		SET(sqlite.String(token), sqlite.Int(expiresMs)).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
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
			sqlite.String(bytesToHex(secret.PasswordHash)),
			sqlite.String(bytesToHex(secret.Salt)),
			sqlite.NULL,
			sqlite.NULL,
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
		// lost the race: the token was consumed or expired between the
		// lookup and the update
		return users.User{}, sql.ErrNoRows
	}
	return user, nil
}

func resetTokenValid(token string, nowMs int64) sqlite.BoolExpression {
	return table.Users.ResetToken.EQ(sqlite.String(token)).
		AND(table.Users.ResetExpires.GT(sqlite.Int(nowMs))).
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
		WHERE(table.Sessions.ID.EQ(sqlite.UUID(id)).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.Session{}, users.User{}, sql.ErrNoRows
		}
		return users.Session{}, users.User{}, err
	}
	session, err := convertSession(dest.Sessions)
	if err != nil {
		return users.Session{}, users.User{}, err
	}
	u, err := convertUser(dest.Users)
	if err != nil {
		return users.Session{}, users.User{}, err
	}
	return session, u, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := table.Sessions.
		DELETE().
		WHERE(table.Sessions.ID.EQ(sqlite.UUID(id))).
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

func convertSecret(user model.Users) (users.Secret, error) {
	hash, err := hexToBytes(user.PasswordHash)
	if err != nil {
		return users.Secret{}, err
	}
	salt, err := hexToBytes(user.PasswordSalt)
	if err != nil {
		return users.Secret{}, err
	}
	return users.Secret{
		PasswordHash: hash,
		Salt:         salt,
	}, nil
}

func convertSession(session model.Sessions) (users.Session, error) {
	id, err := uuid.Parse(session.ID)
	if err != nil {
		return users.Session{}, err
	}
	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return users.Session{}, err
	}
	return users.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared"
}

func bytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

func hexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
