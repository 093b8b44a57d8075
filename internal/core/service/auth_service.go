package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/auth"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// SignInLimiter throttles repeated sign-in attempts (Redis-backed).
type SignInLimiter interface {
	// Allow returns domain.ErrTooManyAttempts when the budget for the
	// email or IP is exhausted.
	Allow(ctx context.Context, email, ip string) error
	// Reset clears the counters after a successful sign-in.
	Reset(ctx context.Context, email, ip string) error
}

// AuthService implements sign-up, sign-in, and profile lookup. Session
// tokens are issued here; attaching them to cookies is the handler's job.
type AuthService struct {
	users   ports.UserRepository
	codec   *auth.TokenCodec
	limiter SignInLimiter
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *auth.TokenCodec, limiter SignInLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, limiter: limiter, log: log}
}

func (s *AuthService) SignUp(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.IsValidRole(role) {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Issue(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("account created")
	return created, token, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password, clientIP string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	email = strings.ToLower(email)

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email, clientIP); err != nil {
			if err == domain.ErrTooManyAttempts {
				return nil, "", err
			}
			// Limiter outage must not lock everyone out.
			s.log.Warn().Err(err).Msg("sign-in limiter unavailable, failing open")
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Indistinguishable from a wrong password on purpose.
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	if s.limiter != nil {
		// Failed attempts before this one no longer count.
		if err := s.limiter.Reset(ctx, email, clientIP); err != nil {
			s.log.Warn().Err(err).Msg("sign-in limiter reset failed")
		}
	}

	s.log.Info().Str("user_id", user.ID).Msg("signed in")
	return user, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
