package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/middleware"
	"github.com/pathshala/pathshala-api/internal/auth"
	"github.com/pathshala/pathshala-api/internal/core/domain"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, name, email, password, role string) (*domain.User, string, error)
	signInFn func(ctx context.Context, email, password, clientIP string) (*domain.User, string, error)
	meFn     func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
	return s.signUpFn(ctx, name, email, password, role)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password, clientIP string) (*domain.User, string, error) {
	return s.signInFn(ctx, email, password, clientIP)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func newTestContext(t *testing.T, method, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
			if name != "Asha" || email != "asha@example.com" || role != "" {
				t.Fatalf("unexpected args: %s %s %s", name, email, role)
			}
			return &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleUser}, "token123", nil
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	_, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Asha","email":"asha@example.com","password":"secret1"}`)

	if err := handler.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if cookie.Value != "token123" || !cookie.HttpOnly || cookie.Path != "/" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if cookie.MaxAge != 604800 {
		t.Fatalf("expected 7-day max-age, got %d", cookie.MaxAge)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u1" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response: %+v", user)
	}
}

func TestAuthHandler_SignUp_Conflict(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	e, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Asha","email":"asha@example.com","password":"secret1"}`)

	if err := handler.SignUp(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("no cookie should be set on conflict")
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, name, email, password, role string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	// Password below the minimum length fails validation before the service.
	e, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Asha","email":"asha@example.com","password":"abc"}`)

	if err := handler.SignUp(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password, clientIP string) (*domain.User, string, error) {
			return &domain.User{ID: "u1", Name: "Asha", Role: domain.RoleUser}, "token456", nil
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	_, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signin",
		`{"email":"asha@example.com","password":"secret1"}`)

	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "token456" {
		t.Fatalf("expected session cookie with token, got %+v", cookie)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password, clientIP string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	e, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signin",
		`{"email":"asha@example.com","password":"wrong1"}`)

	if err := handler.SignIn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if sessionCookie(t, rec) != nil {
		t.Fatalf("no cookie should be set on failed sign-in")
	}
}

func TestAuthHandler_SignIn_RateLimited(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password, clientIP string) (*domain.User, string, error) {
			return nil, "", domain.ErrTooManyAttempts
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	e, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signin",
		`{"email":"asha@example.com","password":"secret1"}`)

	if err := handler.SignIn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_SignOut_ClearsCookie(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, auth.CookieManager{})

	_, c, rec := newTestContext(t, http.MethodPost, "/api/auth/signout", "")

	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected expired cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &domain.User{ID: "u1", Name: "Asha", Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	_, c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.CtxUserID, "u1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// A valid token for a since-deleted account is treated as signed out: the
// stale cookie is cleared and the client gets a 401.
func TestAuthHandler_Me_DeletedAccount(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewAuthHandler(stub, auth.CookieManager{})

	e, c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set(middleware.CtxUserID, "ghost")

	if err := handler.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected stale cookie cleared, got %+v", cookie)
	}
}

func TestAuthHandler_Me_NoSubject(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, auth.CookieManager{})

	e, c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")

	if err := handler.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
