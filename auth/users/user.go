package users

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	RegisteredAt time.Time
}

// Gravatar returns the avatar URL derived from the user email.
func (u User) Gravatar() string {
	sum := md5.Sum([]byte(u.Email))
	return "https://gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200"
}

type Secret struct {
	PasswordHash []byte
	Salt         []byte
}

type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}
