package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"

	"resback/config"
	"resback/internal/domain/service"
)

const (
	argon2Memory      = 19 * 1024
	argon2Iterations  = 2
	argon2Parallelism = 1
	argon2SaltLen     = 16
	argon2KeyLen      = 32
)

// argon2Hasher implements PasswordHasher using argon2id. An application-wide
// pepper from config is mixed into every hash, so a leaked database alone is
// not enough to mount an offline attack.
type argon2Hasher struct {
	pepper []byte
}

// NewArgon2Hasher is the constructor for argon2Hasher.
func NewArgon2Hasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg.Auth == nil || cfg.Auth.Pepper == "" {
		return nil, errors.New("password pepper must be provided")
	}

	return &argon2Hasher{pepper: []byte(cfg.Auth.Pepper)}, nil
}

// Hash generates a salted argon2id hash in PHC string format.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "generate salt")
	}

	key := h.deriveKey(password, salt)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Iterations, argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Check compares a plaintext password with a stored hash.
func (h *argon2Hasher) Check(password, hash string) bool {
	salt, key, ok := decodeHash(hash)
	if !ok {
		return false
	}

	derived := h.deriveKey(password, salt)

	return subtle.ConstantTimeCompare(derived, key) == 1
}

func (h *argon2Hasher) deriveKey(password string, salt []byte) []byte {
	peppered := append([]byte(password), h.pepper...)

	return argon2.IDKey(peppered, salt, argon2Iterations, argon2Memory, argon2Parallelism, argon2KeyLen)
}

func decodeHash(hash string) (salt, key []byte, ok bool) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, false
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, false
	}

	return salt, key, true
}
