// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"maonav/internal/domain"
	"maonav/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is the lifetime of a token and its session row.
const SessionTTL = 24 * time.Hour

var (
	// ErrUnauthorized covers every authentication failure on a protected
	// operation. Callers map it to a single external status.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingBearer indicates that no bearer token was presented.
	ErrMissingBearer = fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	// ErrSessionRevokedOrExpired indicates a token that verified but has no
	// live session row.
	ErrSessionRevokedOrExpired = fmt.Errorf("%w: session not found or expired", ErrUnauthorized)
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCurrentPassword indicates a failed re-verification during a
	// password change.
	ErrInvalidCurrentPassword = errors.New("invalid current password")
	// ErrAdminExists is returned by CreateInitialAdmin once an admin exists.
	ErrAdminExists = errors.New("admin already exists")
	// ErrAdminNotFound indicates that the admin does not exist.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrMissingFields indicates a request without its required fields.
	ErrMissingFields = errors.New("missing required fields")
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService handles authentication and session management.
type AuthService struct {
	admins   domain.AdminRepository
	sessions domain.SessionRepository
	tokens   *security.TokenCodec
	hasher   *security.PasswordHasher
	legacy   security.LegacyPolicy
	now      func() time.Time
	log      *slog.Logger
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock sets the time source used for expiry decisions.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithLegacyPolicy selects how legacy bcrypt-format hashes are handled.
func WithLegacyPolicy(p security.LegacyPolicy) AuthOption {
	return func(s *AuthService) { s.legacy = p }
}

// WithLogger sets the logger for authentication events.
func WithLogger(l *slog.Logger) AuthOption {
	return func(s *AuthService) { s.log = l }
}

// NewAuthService creates a new authentication service. The secret keys both
// the token signature and the password hash.
func NewAuthService(admins domain.AdminRepository, sessions domain.SessionRepository, secret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		admins:   admins,
		sessions: sessions,
		hasher:   security.NewPasswordHasher(secret),
		legacy:   security.LegacyCompat,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tokens = security.NewTokenCodec(secret, s.now)
	return s
}

// Login authenticates the admin, issues a token and records its session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrMissingFields)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.checkPassword(password, admin.PasswordHash)
	if err != nil {
		s.log.Error("stored credential cannot be verified", "admin_id", admin.ID, "error", err)
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(SessionTTL).Truncate(time.Second).UTC()
	token, err := s.tokens.Issue(security.Claims{
		Subject:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, &domain.Session{
		ID:        uuid.NewString(),
		OwnerID:   admin.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: s.now().UTC(),
	}); err != nil && !errors.Is(err, domain.ErrDuplicate) {
		// A duplicate means a login within the same second already stored
		// this exact token with the same expiry.
		return nil, err
	}

	s.log.Info("admin logged in", "admin_id", admin.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves the caller behind an Authorization header value. The
// token is verified first, then the session row is consulted so that a
// deleted session revokes an otherwise valid token.
func (s *AuthService) Authenticate(ctx context.Context, authorization string) (*domain.Identity, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return nil, ErrMissingBearer
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	session, err := s.sessions.FindByToken(ctx, token, s.now())
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionRevokedOrExpired
	}

	return &domain.Identity{ID: claims.Subject, Username: claims.Username}, nil
}

// Logout invalidates the session holding token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

// ChangePassword re-verifies the current password, stores the new hash and
// ends every session of the admin.
func (s *AuthService) ChangePassword(ctx context.Context, who *domain.Identity, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", ErrMissingFields)
	}

	admin, err := s.admins.GetByID(ctx, who.ID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	ok, err := s.checkPassword(current, admin.PasswordHash)
	if errors.Is(err, security.ErrLegacyHash) {
		return ErrInvalidCurrentPassword
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCurrentPassword
	}

	if err := s.setPassword(ctx, admin.ID, next); err != nil {
		return err
	}
	s.log.Info("admin password changed", "admin_id", admin.ID)
	return nil
}

// ResetPassword overwrites the password of username without verifying the
// old one and ends all of its sessions. It is meant for operators only.
func (s *AuthService) ResetPassword(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrMissingFields)
	}
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	return s.setPassword(ctx, admin.ID, password)
}

// CreateInitialAdmin creates the first admin if none exists.
func (s *AuthService) CreateInitialAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrMissingFields)
	}

	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAdminExists
	}

	_, err = s.admins.Create(ctx, username, s.hasher.Hash(password))
	return err
}

// PurgeExpiredSessions physically removes expired session rows.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func (s *AuthService) setPassword(ctx context.Context, adminID int64, password string) error {
	if err := s.admins.UpdatePasswordHash(ctx, adminID, s.hasher.Hash(password)); err != nil {
		return err
	}
	return s.sessions.DeleteByOwner(ctx, adminID)
}

func (s *AuthService) checkPassword(password, stored string) (bool, error) {
	if security.IsLegacyHash(stored) {
		return s.legacy.Verify(password, stored)
	}
	return s.hasher.Verify(password, stored), nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(authorization string) (string, bool) {
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
