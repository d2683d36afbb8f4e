// Package session issues and reads the anonymous storefront session cookie.
// A session identifies one cart for the lifetime of the browser session; it
// carries no credentials.
package session

import (
	"net/http"

	"github.com/google/uuid"
)

const CookieName = "cart_session"

// EnsureID returns the session ID from the request cookie, minting and
// setting a new one when the request has none.
func EnsureID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
