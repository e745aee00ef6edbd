package service

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/goserg/storeserver/auth/users"
)

// argon2id parameters, fixed for every stored secret.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	saltLen      = 16
)

func randomSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, err
	}
	return salt, nil
}

func generateSecret(password string, pepper string, salt []byte) users.Secret {
	key := argon2.IDKey([]byte(pepper+password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return users.Secret{
		PasswordHash: key,
		Salt:         salt,
	}
}

func verifySecret(password string, pepper string, secret users.Secret) bool {
	key := argon2.IDKey([]byte(pepper+password), secret.Salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(key, secret.PasswordHash) == 1
}
