package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goserg/storeserver/auth/storage"
)

func TestSignUpNormalizesAndStartsSession(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	user, cookie, err := svc.SignUp(ctx, "  Bob@Example.COM ", "  Bob  ", "secretpw", "secretpw")
	require.NoError(t, err)
	require.NotNil(t, cookie)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, "Bob", user.Name)
	assert.Equal(t, 1, st.sessionCount())

	// the JWT cookie resolves back to the same user
	got, err := svc.Auth(ctx, cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "bob@example.com", "Bob", "secretpw", "secretpw")
	require.NoError(t, err)
	_, _, err = svc.SignUp(ctx, "BOB@example.com", "Other Bob", "secretpw", "secretpw")
	require.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestSignUpInvalid(t *testing.T) {
	svc, st, _ := newTestService()
	_, _, err := svc.SignUp(context.Background(), "not-an-email", "", "pw", "other")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Zero(t, st.writeCount(), "invalid registration must not reach storage")
}

func TestLoginWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, _, err := svc.SignUp(ctx, "bob@example.com", "Bob", "secretpw", "secretpw")
	require.NoError(t, err)

	_, _, errWrongPw := svc.Login(ctx, "bob@example.com", "wrong")
	_, _, errNoUser := svc.Login(ctx, "ghost@example.com", "secretpw")

	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
}

func TestLogoutEndsSession(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()
	_, cookie, err := svc.SignUp(ctx, "bob@example.com", "Bob", "secretpw", "secretpw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, cookie.Value))
	assert.Zero(t, st.sessionCount())

	_, err = svc.Auth(ctx, cookie.Value)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestLogoutGarbageCookie(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Logout(context.Background(), "not-a-jwt"))
}

func TestAuthNoCookie(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Auth(context.Background(), "")
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUpdateAccount(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	user, _, err := svc.SignUp(ctx, "bob@example.com", "Bob", "secretpw", "secretpw")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateAccount(ctx, user.ID, " New Name ", " NEW@Example.com "))
	got, err := svc.storage.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "new@example.com", got.Email)
}
