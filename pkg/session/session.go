// Package session manages the panel's authentication cookies.
//
// A session is the am_token/am_role cookie pair. Both cookies are always
// written and cleared together; a session is never half-present. The
// package holds no process-wide state: a Session value is resolved from
// the incoming request and passed around per handler.
package session

import (
	"net/http"
	"time"
)

// Cookie names for the session pair.
const (
	TokenCookie = "am_token"
	RoleCookie  = "am_role"
)

// Recognized role values.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// MaxAge is the cookie lifetime from write time.
const MaxAge = 7 * 24 * time.Hour

// Session holds the values read from the request cookies. Zero values
// mean "absent".
type Session struct {
	Token string
	Role  string
}

// FromRequest resolves the session from the request cookies.
func FromRequest(r *http.Request) Session {
	var s Session
	if c, err := r.Cookie(TokenCookie); err == nil {
		s.Token = c.Value
	}
	if c, err := r.Cookie(RoleCookie); err == nil {
		s.Role = c.Value
	}
	return s
}

// Authenticated reports whether both token and role are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Role != ""
}

// IsAdmin reports whether the stored role is admin. Callers must still
// check Authenticated; a role cookie can outlive its token cookie.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Store writes and clears session cookies. The secure flag is set from
// configuration (production only) so local development works over HTTP.
type Store struct {
	secure bool
}

// NewStore creates a cookie store.
func NewStore(secure bool) *Store {
	return &Store{secure: secure}
}

// Write sets both session cookies on the response.
func (st *Store) Write(w http.ResponseWriter, token, role string) {
	http.SetCookie(w, st.cookie(TokenCookie, token, int(MaxAge.Seconds())))
	http.SetCookie(w, st.cookie(RoleCookie, role, int(MaxAge.Seconds())))
}

// Clear expires both session cookies unconditionally. Idempotent.
func (st *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, st.cookie(TokenCookie, "", -1))
	http.SetCookie(w, st.cookie(RoleCookie, "", -1))
}

func (st *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
