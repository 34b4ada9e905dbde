// ABOUTME: Session cookie issuing and clearing with environment-dependent attributes
// ABOUTME: Production uses Secure + SameSite=None for cross-site frontends, development uses Lax

package auth

import (
	"net/http"
	"time"
)

// CookieManager writes and clears the named session cookie. Cookie attributes
// depend on the environment: local development runs over plaintext HTTP on a
// single origin, while production serves HTTPS with a possibly separate
// frontend origin, so Secure and SameSite must flip between the two.
type CookieManager struct {
	name       string
	maxAge     time.Duration
	production bool
}

// NewCookieManager creates a cookie manager for the named cookie.
func NewCookieManager(name string, maxAge time.Duration, production bool) *CookieManager {
	return &CookieManager{
		name:       name,
		maxAge:     maxAge,
		production: production,
	}
}

// Name returns the session cookie name.
func (m *CookieManager) Name() string {
	return m.name
}

// sameSite returns the SameSite policy for the current environment.
func (m *CookieManager) sameSite() http.SameSite {
	if m.production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// Write attaches the session cookie carrying the token to the response.
func (m *CookieManager) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.production,
		SameSite: m.sameSite(),
	})
}

// Clear removes the session cookie. Clearing an absent cookie is not an
// error; the operation is idempotent.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.production,
		SameSite: m.sameSite(),
	})
}

// Read extracts the session token from the request cookie. Returns an empty
// string when the cookie is absent.
func (m *CookieManager) Read(r *http.Request) string {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
