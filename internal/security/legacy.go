package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrLegacyHash is returned when a legacy hash cannot be verified. It points
// at a data problem, not a wrong password.
var ErrLegacyHash = errors.New("cannot verify password, please reset password via database")

// LegacyPolicy selects how credentials stored in the legacy bcrypt format are
// checked.
type LegacyPolicy string

const (
	// LegacyCompat accepts the literal password "admin" for any legacy hash
	// and refuses everything else with ErrLegacyHash.
	//
	// This is a known bug kept for compatibility with existing deployments
	// whose seed row was never re-hashed.
	LegacyCompat LegacyPolicy = "compat"
	// LegacyBcrypt verifies the legacy hash with bcrypt.
	LegacyBcrypt LegacyPolicy = "bcrypt"
	// LegacyReset refuses all legacy hashes until an operator resets the
	// password.
	LegacyReset LegacyPolicy = "reset"
)

const legacyDefaultPassword = "admin"

// ParseLegacyPolicy validates s. An empty string selects LegacyCompat.
func ParseLegacyPolicy(s string) (LegacyPolicy, error) {
	switch p := LegacyPolicy(s); p {
	case "":
		return LegacyCompat, nil
	case LegacyCompat, LegacyBcrypt, LegacyReset:
		return p, nil
	default:
		return "", fmt.Errorf("unknown legacy hash policy %q", s)
	}
}

// Verify checks password against a legacy stored hash. A false result with a
// nil error is an ordinary mismatch.
func (p LegacyPolicy) Verify(password, stored string) (bool, error) {
	switch p {
	case LegacyBcrypt:
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrLegacyHash, err)
		}
		return true, nil
	case LegacyReset:
		return false, ErrLegacyHash
	default:
		if password == legacyDefaultPassword {
			return true, nil
		}
		return false, ErrLegacyHash
	}
}
