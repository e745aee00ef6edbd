package service

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/auth/storage"
	"github.com/goserg/storeserver/auth/users"
	"github.com/goserg/storeserver/internal/mail"
)

type memRecord struct {
	user     users.User
	secret   users.Secret
	token    string
	expires  int64
	hasToken bool
}

// memStorage is an in-memory AuthStorage with the same conditional-update
// semantics as the SQL backends. It counts writes so tests can assert that
// an operation was a storage no-op.
type memStorage struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*memRecord
	sessions map[uuid.UUID]users.Session
	writes   int
}

var _ storage.AuthStorage = (*memStorage)(nil)

func newMemStorage() *memStorage {
	return &memStorage{
		users:    make(map[uuid.UUID]*memRecord),
		sessions: make(map[uuid.UUID]users.Session),
	}
}

func (m *memStorage) CreateUser(_ context.Context, user users.User, secret users.Secret) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.users {
		if rec.user.Email == user.Email {
			return storage.ErrEmailTaken
		}
	}
	m.users[user.ID] = &memRecord{user: user, secret: secret}
	m.writes++
	return nil
}

func (m *memStorage) GetUser(_ context.Context, id uuid.UUID) (users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.users[id]
	if !ok {
		return users.User{}, sql.ErrNoRows
	}
	return rec.user, nil
}

func (m *memStorage) GetUserByEmail(_ context.Context, email string) (users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.users {
		if rec.user.Email == email {
			return rec.user, nil
		}
	}
	return users.User{}, sql.ErrNoRows
}

func (m *memStorage) GetUserSecret(_ context.Context, email string) (users.User, users.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.users {
		if rec.user.Email == email {
			return rec.user, rec.secret, nil
		}
	}
	return users.User{}, users.Secret{}, sql.ErrNoRows
}

func (m *memStorage) UpdateUser(_ context.Context, id uuid.UUID, name string, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	rec.user.Name = name
	rec.user.Email = email
	m.writes++
	return nil
}

func (m *memStorage) SetResetToken(_ context.Context, id uuid.UUID, token string, expiresMs int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	rec.token = token
	rec.expires = expiresMs
	rec.hasToken = true
	m.writes++
	return nil
}

func (m *memStorage) FindByResetToken(_ context.Context, token string, nowMs int64) (users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.findByToken(token, nowMs)
	if rec == nil {
		return users.User{}, sql.ErrNoRows
	}
	return rec.user, nil
}

func (m *memStorage) ConsumePasswordReset(_ context.Context, token string, nowMs int64, secret users.Secret) (users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.findByToken(token, nowMs)
	if rec == nil {
		return users.User{}, sql.ErrNoRows
	}
	rec.secret = secret
	rec.token = ""
	rec.expires = 0
	rec.hasToken = false
	m.writes++
	return rec.user, nil
}

func (m *memStorage) findByToken(token string, nowMs int64) *memRecord {
	for _, rec := range m.users {
		if rec.hasToken && rec.token == token && rec.expires > nowMs {
			return rec
		}
	}
	return nil
}

func (m *memStorage) CreateSession(_ context.Context, session users.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	m.writes++
	return nil
}

func (m *memStorage) GetSession(_ context.Context, id uuid.UUID) (users.Session, users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return users.Session{}, users.User{}, sql.ErrNoRows
	}
	rec, ok := m.users[session.UserID]
	if !ok {
		return users.Session{}, users.User{}, sql.ErrNoRows
	}
	return session, rec.user, nil
}

func (m *memStorage) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStorage) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *memStorage) record(id uuid.UUID) memRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.users[id]
}

func (m *memStorage) sessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type memMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	fail error
}

var _ mail.Mailer = (*memMailer)(nil)

func (m *memMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestService() (*Service, *memStorage, *memMailer) {
	st := newMemStorage()
	mailer := &memMailer{}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	svc := New(Config{
		Token:      "test-secret",
		Expiration: "24h",
	}, st, mailer, l)
	return svc, st, mailer
}
