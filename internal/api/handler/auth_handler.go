package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/metrics"
	"github.com/pathshala/pathshala-api/internal/auth"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// AuthHandler handles sign-up, sign-in, sign-out, and the current-user
// profile. It owns the session cookie lifecycle: services issue tokens,
// this handler attaches and clears them.
type AuthHandler struct {
	authService ports.AuthService
	cookies     auth.CookieManager
}

func NewAuthHandler(authService ports.AuthService, cookies auth.CookieManager) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// SignUp creates a new account and starts a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.SignUp(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
		}
		return err
	}

	metrics.SignUpsTotal.WithLabelValues(user.Role).Inc()
	h.cookies.Attach(c.Response(), token)
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// SignIn authenticates an account and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.SignInsTotal.WithLabelValues("rate_limited").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
		case errors.Is(err, domain.ErrInvalidCredentials):
			// No cookie on failure, and no hint whether the email exists.
			metrics.SignInsTotal.WithLabelValues("invalid_credentials").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	h.cookies.Attach(c.Response(), token)
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// SignOut clears the session cookie. Safe to call without a session.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	h.cookies.Clear(c.Response())
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out"})
}

// Me returns the authenticated account's profile.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Valid token for a deleted account; treat as signed out.
			h.cookies.Clear(c.Response())
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}
