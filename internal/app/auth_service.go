package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"docrag/internal/model"
	"docrag/internal/pkg/jwtutil"
	"docrag/internal/repository"
)

type UserStore interface {
	Create(user *model.User) error
	Save(user *model.User) error
	GetByUsername(username string) (*model.User, error)
}

// SessionStore maps live tokens to the last time they were seen.
type SessionStore interface {
	Put(ctx context.Context, token string, seen time.Time) error
	Touch(ctx context.Context, token string, seen time.Time) (bool, error)
	Delete(ctx context.Context, token string) error
}

type AuthService struct {
	users         UserStore
	sessions      SessionStore
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

type Credentials struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
}

func NewAuthService(users UserStore, sessions SessionStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	if jwtExpiration <= 0 {
		jwtExpiration = 15 * time.Minute
	}
	return &AuthService{
		users:         users,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
		logger:        slog.Default().With("component", "auth"),
	}
}

func (s *AuthService) Register(input Credentials) error {
	if input.Username == "" {
		return ErrInvalidInput
	}
	existing, err := s.users.GetByUsername(input.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameExists
	}
	if err := s.users.Create(&model.User{Username: input.Username, Password: input.Password}); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUsernameExists
		}
		return err
	}
	s.logger.Info("user registered", "username", input.Username)
	return nil
}

// Login compares the password as stored and, on a match, issues a signed
// token and records it as a live session.
func (s *AuthService) Login(ctx context.Context, input Credentials) (*AuthResult, error) {
	user, err := s.users.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != input.Password {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.Username)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, token, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("record session failed: %w", err)
	}
	return &AuthResult{Token: token}, nil
}

// Logout forgets the session. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, StripBearer(token))
}

func (s *AuthService) GetUser(username string) (*model.User, error) {
	if username == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetUser creates the user or replaces its password.
func (s *AuthService) SetUser(input Credentials) error {
	if input.Username == "" {
		return ErrInvalidInput
	}
	return s.users.Save(&model.User{Username: input.Username, Password: input.Password})
}

// Authenticate reports whether token belongs to a live session and refreshes
// its last-seen time. Signature and expiry are not checked here.
func (s *AuthService) Authenticate(ctx context.Context, token string) (bool, error) {
	return s.sessions.Touch(ctx, token, s.now().UTC())
}

// VerifyToken checks signature and expiry and returns the subject. A live
// session for the token is refreshed as a side effect.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, token)
	if err != nil {
		if errors.Is(err, jwtutil.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if _, err := s.sessions.Touch(ctx, token, s.now().UTC()); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func StripBearer(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return header
}
