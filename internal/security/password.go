package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// LegacyHashPrefix marks a stored hash in the old bcrypt format, which
// PasswordHasher cannot verify.
const LegacyHashPrefix = "$2a$"

// PasswordHasher derives the stored admin credential as
// base64(HMAC-SHA256(secret, password)).
//
// This is a fast keyed hash, not an adaptive password hash. It is only
// acceptable under the single trusted admin threat model.
type PasswordHasher struct {
	secret []byte
}

// NewPasswordHasher returns a hasher keyed with secret.
func NewPasswordHasher(secret string) *PasswordHasher {
	return &PasswordHasher{secret: []byte(secret)}
}

// Hash returns the stored form of password.
func (h *PasswordHasher) Hash(password string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether password hashes to stored. Legacy hashes never
// verify here; check IsLegacyHash first.
func (h *PasswordHasher) Verify(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(h.Hash(password)), []byte(stored)) == 1
}

// IsLegacyHash reports whether stored uses the legacy bcrypt format.
func IsLegacyHash(stored string) bool {
	return strings.HasPrefix(stored, LegacyHashPrefix)
}
