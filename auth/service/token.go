package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goserg/storeserver/auth/users"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

// IssueResetToken mints a single-use reset token for the user and persists
// it together with its expiry in one storage write. On storage failure no
// token is usable and the caller simply reissues.
func (s *Service) IssueResetToken(ctx context.Context, user users.User) (string, time.Time, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	token := hex.EncodeToString(buf)
	expires := time.Now().Add(resetTokenTTL)
	if err := s.storage.SetResetToken(ctx, user.ID, token, expires.UnixMilli()); err != nil {
		return "", time.Time{}, fmt.Errorf("persist reset token: %w", err)
	}
	return token, expires, nil
}
