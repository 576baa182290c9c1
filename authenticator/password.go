package authenticator

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	keyLength   = 32
	timeCost    = 3
	memoryCost  = 64 * 1024
	parallelism = 2
)

const hashPrefix = "$argon2id$v=19$m=65536,t=3,p=2$"

// HashPassword hashes a password using Argon2id.
// Format: $argon2id$v=19$m=65536,t=3,p=2$salt$hash
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, parallelism, keyLength)

	return hashPrefix +
		base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

// PasswordVerifier checks passwords against one stored Argon2id hash
type PasswordVerifier struct {
	salt []byte
	hash []byte
}

var _ Verifier = (*PasswordVerifier)(nil)

// NewPasswordVerifier builds a verifier from an encoded hash, or from a
// plain password when hash is empty
func NewPasswordVerifier(password, hash string) (*PasswordVerifier, error) {
	if hash == "" {
		if password == "" {
			return nil, errors.New("admin password is required")
		}
		var err error
		if hash, err = HashPassword(password); err != nil {
			return nil, err
		}
	}

	salt, key, err := decodeHash(hash)
	if err != nil {
		return nil, err
	}
	return &PasswordVerifier{salt: salt, hash: key}, nil
}

// Verify reports whether password matches the stored hash
func (v *PasswordVerifier) Verify(password string) bool {
	computed := argon2.IDKey([]byte(password), v.salt, timeCost, memoryCost, parallelism, keyLength)
	return subtle.ConstantTimeCompare(computed, v.hash) == 1
}

func decodeHash(encoded string) (salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, errors.New("invalid hash format")
	}
	if "$"+parts[1]+"$"+parts[2]+"$"+parts[3]+"$" != hashPrefix {
		return nil, nil, fmt.Errorf("unsupported argon2id parameters %q", parts[2]+"$"+parts[3])
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid hash salt: %w", err)
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid hash key: %w", err)
	}
	if len(hash) != keyLength {
		return nil, nil, fmt.Errorf("invalid hash length %d", len(hash))
	}
	return salt, hash, nil
}
