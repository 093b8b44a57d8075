package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pathshala/pathshala-api/internal/auth"
	"github.com/pathshala/pathshala-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.User
	for i := 1; i <= r.nextID; i++ {
		if u, ok := r.users[fmt.Sprintf("u%d", i)]; ok && u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type stubLimiter struct {
	err    error
	calls  int
	resets int
}

func (l *stubLimiter) Allow(_ context.Context, _, _ string) error {
	l.calls++
	return l.err
}

func (l *stubLimiter) Reset(_ context.Context, _, _ string) error {
	l.resets++
	return nil
}

func newAuthService(repo *stubUserRepo, limiter SignInLimiter) (*AuthService, *auth.TokenCodec) {
	codec := auth.NewTokenCodec("test-secret")
	return NewAuthService(repo, codec, limiter, zerolog.Nop()), codec
}

func TestAuthService_SignUp_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newAuthService(repo, nil)

	user, token, err := svc.SignUp(context.Background(), "Alice", "Alice@Example.COM", "pass123", "")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id, got empty")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, ok := codec.Verify(token)
	if !ok {
		t.Fatalf("issued token did not verify")
	}
	if claims.Subject != user.ID || claims.Role != user.Role {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	if _, _, err := svc.SignUp(context.Background(), "", "a@b.com", "pass", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty name, got %v", err)
	}
	if _, _, err := svc.SignUp(context.Background(), "Bob", "bob@b.com", "pass", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	if _, _, err := svc.SignUp(context.Background(), "Bob", "bob@example.com", "pass", ""); err != nil {
		t.Fatalf("first sign-up failed: %v", err)
	}
	if _, _, err := svc.SignUp(context.Background(), "Bobby", "bob@example.com", "other", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newAuthService(repo, nil)

	if _, _, err := svc.SignUp(context.Background(), "Carol", "carol@example.com", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	user, token, err := svc.SignIn(context.Background(), "Carol@Example.com", "s3cret", "10.0.0.1")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, ok := codec.Verify(token)
	if !ok {
		t.Fatalf("issued token did not verify")
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role claim, got %q", claims.Role)
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestAuthService_SignIn_UniformRejection(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	if _, _, err := svc.SignUp(context.Background(), "Dana", "dana@example.com", "right", ""); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	_, _, wrongPass := svc.SignIn(context.Background(), "dana@example.com", "wrong", "")
	_, _, unknown := svc.SignIn(context.Background(), "ghost@example.com", "whatever", "")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if !strings.EqualFold(wrongPass.Error(), unknown.Error()) {
		t.Fatalf("rejections differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_SignIn_RateLimited(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{err: domain.ErrTooManyAttempts}
	svc, _ := newAuthService(repo, limiter)

	if _, _, err := svc.SignUp(context.Background(), "Eve", "eve@example.com", "pass", ""); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	_, _, err := svc.SignIn(context.Background(), "eve@example.com", "pass", "10.0.0.9")
	if err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if limiter.calls != 1 {
		t.Fatalf("expected limiter to be consulted once, got %d", limiter.calls)
	}
	if limiter.resets != 0 {
		t.Fatalf("rejected sign-in must not reset the counters")
	}
}

// A successful sign-in clears the attempt counters so earlier failures no
// longer count toward a lockout.
func TestAuthService_SignIn_ResetsLimiterOnSuccess(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc, _ := newAuthService(repo, limiter)

	if _, _, err := svc.SignUp(context.Background(), "Gita", "gita@example.com", "pass", ""); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	if _, _, err := svc.SignIn(context.Background(), "gita@example.com", "wrong", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.resets != 0 {
		t.Fatalf("failed attempt must not reset the counters")
	}

	if _, _, err := svc.SignIn(context.Background(), "gita@example.com", "pass", ""); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected one reset after successful sign-in, got %d", limiter.resets)
	}
}

// A limiter outage must not lock users out of their accounts.
func TestAuthService_SignIn_LimiterFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{err: errors.New("redis: connection refused")}
	svc, _ := newAuthService(repo, limiter)

	if _, _, err := svc.SignUp(context.Background(), "Frank", "frank@example.com", "pass", ""); err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	if _, _, err := svc.SignIn(context.Background(), "frank@example.com", "pass", ""); err != nil {
		t.Fatalf("expected sign-in to succeed despite limiter outage, got %v", err)
	}
}
