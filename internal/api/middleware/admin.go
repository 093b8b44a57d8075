package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pathshala/pathshala-api/internal/api/metrics"
	"github.com/pathshala/pathshala-api/internal/core/domain"
	"github.com/pathshala/pathshala-api/internal/core/ports"
)

// RequireAdmin gates privileged routes. It must run after Authenticate: the
// resolved subject id is looked up in the account store and the live role
// must be admin. A missing account and a role mismatch are deliberately
// indistinguishable (both 403) so the response never reveals whether an id
// exists. A store outage is the one case surfaced differently, as a 500.
func RequireAdmin(users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(CtxUserID).(string)
			if userID == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "admin access required")
				}
				log.Error().Err(err).Str("user_id", userID).Msg("admin gate lookup failed")
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			if user.Role != domain.RoleAdmin {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			return next(c)
		}
	}
}
