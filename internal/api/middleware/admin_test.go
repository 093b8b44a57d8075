package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
	err   error
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	panic("not used")
}

func (r *stubUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ListByRole(context.Context, string) ([]domain.User, error) {
	panic("not used")
}

func runGate(t *testing.T, repo *stubUserRepo, userID string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(CtxUserID, userID)
	}

	mw := RequireAdmin(repo, zerolog.Nop())
	return mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestRequireAdmin_Allows(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"a1": {ID: "a1", Role: domain.RoleAdmin},
	}}

	if err := runGate(t, repo, "a1"); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
}

// A missing account and a non-admin role must be indistinguishable to the
// caller.
func TestRequireAdmin_ForbidsUniformly(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleUser},
	}}

	for _, id := range []string{"u1", "ghost"} {
		err := runGate(t, repo, id)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusForbidden {
			t.Fatalf("id %q: expected 403, got %v", id, err)
		}
		if he.Message != "admin access required" {
			t.Fatalf("id %q: unexpected message %v", id, he.Message)
		}
	}
}

func TestRequireAdmin_MissingSubject(t *testing.T) {
	err := runGate(t, &stubUserRepo{}, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireAdmin_StoreOutage(t *testing.T) {
	repo := &stubUserRepo{err: errors.New("connection refused")}

	err := runGate(t, repo, "a1")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store outage, got %v", err)
	}
}
