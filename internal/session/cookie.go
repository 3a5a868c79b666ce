package session

import (
	"net/http"
	"time"
)

// CookieName matches what the original frontend expects.
const CookieName = "sessionid"

// Cookie writes and clears the HTTP-only session cookie. Cross-origin
// deployments need Secure + SameSite=None; local development uses Lax.
type Cookie struct {
	Secure bool
	MaxAge time.Duration
}

func (c Cookie) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	})
}

func (c Cookie) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// TokenFromRequest extracts the session token, or "" when absent.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
