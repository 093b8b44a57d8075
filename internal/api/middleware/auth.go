package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/metrics"
	"github.com/pathshala/pathshala-api/internal/auth"
)

// Context keys set by Authenticate and consumed by handlers and the admin
// gate.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Authenticate resolves the current user from the session cookie and
// injects the subject id and role snapshot into the Echo context. It is the
// single choke point every protected route runs through: an absent cookie,
// a malformed token, a bad signature, and an expired token all produce the
// same 401 with no indication of which case occurred.
func Authenticate(codec *auth.TokenCodec, cookies auth.CookieManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := cookies.Read(c.Request())
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, ok := codec.Verify(raw)
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}
