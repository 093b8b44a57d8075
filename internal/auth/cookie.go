package auth

import (
	"net/http"
	"time"
)

// CookieName is the single session cookie carried by every client agent.
const CookieName = "authToken"

// CookieManager sets, reads, and clears the HTTP-only session cookie.
type CookieManager struct {
	// Secure marks the cookie Secure; enabled on production-like
	// deployments so it only travels over TLS.
	Secure bool
}

// Attach sets the session cookie on an outgoing response. The cookie
// lifetime matches TokenTTL so cookie and token expire together.
func (m CookieManager) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   m.Secure,
		MaxAge:   int(TokenTTL / time.Second),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts the raw token from the request, reporting whether the
// cookie was present.
func (m CookieManager) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Clear removes the session cookie. Clearing an absent cookie is not an
// error; the operation is idempotent.
func (m CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   m.Secure,
		MaxAge:   -1,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}
