package application

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

const (
	minPasswordLength = 6
	profileCacheSize  = 64
)

// AuthConfig configures the admin authentication service.
type AuthConfig struct {
	// SignUpEmail is the only identity allowed to register.
	SignUpEmail     string
	ProfileCacheTTL time.Duration
	Logger          *slog.Logger
}

type authService struct {
	users    UserRepository
	profiles AdminProfileRepository
	sessions SessionRepository
	tokens   TokenIssuer
	cache    *expirable.LRU[string, admindomain.AdminProfile]
	signUp   string
	logger   *slog.Logger
}

func NewAuthService(users UserRepository, profiles AdminProfileRepository, sessions SessionRepository, tokens TokenIssuer, cfg AuthConfig) AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.ProfileCacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &authService{
		users:    users,
		profiles: profiles,
		sessions: sessions,
		tokens:   tokens,
		cache:    expirable.NewLRU[string, admindomain.AdminProfile](profileCacheSize, nil, ttl),
		signUp:   admindomain.NormalizeEmail(cfg.SignUpEmail),
		logger:   logger,
	}
}

// SignUp registers the authorised administrator identity. Any other e-mail is
// refused before the store is touched.
func (s *authService) SignUp(ctx context.Context, email, password string) error {
	email = admindomain.NormalizeEmail(email)
	if s.signUp == "" || email != s.signUp {
		return apperr.ErrSignUpNotAllowed
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperr.Validation("password", "A senha deve ter pelo menos 6 caracteres.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &admindomain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrAlreadyRegistered) {
			return err
		}
		return apperr.Store("create user", err)
	}
	s.logger.Info("admin account created", "user_id", user.ID)
	return nil
}

// SignIn verifies the credentials, issues a session and runs the admin guard on it.
func (s *authService) SignIn(ctx context.Context, email, password string) (*admindomain.Authorization, error) {
	user, err := s.users.FindByEmail(ctx, admindomain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, apperr.Store("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	session, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return s.authorize(ctx, session)
}

// SignOut revokes the presented session. Signing out an already invalid session is a no-op.
func (s *authService) SignOut(ctx context.Context, token string) error {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session); err != nil {
		return apperr.Store("revoke session", err)
	}
	return nil
}

// Session returns the live session behind a token.
func (s *authService) Session(ctx context.Context, token string) (*admindomain.Session, error) {
	if token == "" {
		return nil, apperr.ErrSessionInvalid
	}
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperr.ErrSessionInvalid
	}
	revoked, err := s.sessions.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return nil, apperr.Store("check session", err)
	}
	if revoked {
		return nil, apperr.ErrSessionInvalid
	}
	return &session, nil
}

// RequireAdmin is the single admin guard used by sign-in and by every dashboard route.
func (s *authService) RequireAdmin(ctx context.Context, token string) (*admindomain.Authorization, error) {
	session, err := s.Session(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.authorize(ctx, *session)
}

// authorize resolves the admin profile of a session. A session without a
// profile is revoked on the spot.
func (s *authService) authorize(ctx context.Context, session admindomain.Session) (*admindomain.Authorization, error) {
	if profile, ok := s.cache.Get(session.UserID); ok {
		return &admindomain.Authorization{Session: session, Profile: profile}, nil
	}

	profile, err := s.profiles.FindByUserID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Store("find admin profile", err)
		}
		if revokeErr := s.sessions.Revoke(ctx, session); revokeErr != nil {
			s.logger.Error("failed to revoke non-admin session", "err", revokeErr, "user_id", session.UserID)
		}
		s.logger.Warn("admin access denied", "user_id", session.UserID)
		return nil, apperr.ErrAccessDenied
	}

	s.cache.Add(session.UserID, *profile)
	return &admindomain.Authorization{Session: session, Profile: *profile}, nil
}
