package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guardianlab/guardian/internal/models"
)

const (
	tokenCookieName   = "auth_token"
	refreshCookieName = "refresh_token"
	userCookieName    = "user_data"
)

// SessionUser is the profile stored client-side. It is derived by decoding
// the access token's claims, not by calling a profile endpoint.
type SessionUser struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Name                string `json:"name,omitempty"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
}

// SessionStore reads and writes the cookie-held session. Both token cookies
// are HttpOnly; the user cookie is readable by page scripts and is
// base64-encoded JSON so it survives cookie value restrictions.
type SessionStore struct {
	secure bool
	maxAge int
}

func NewSessionStore(secure bool) *SessionStore {
	return &SessionStore{secure: secure, maxAge: 86400}
}

func (s *SessionStore) Set(w http.ResponseWriter, tokens *TokenResponse, user SessionUser) {
	s.setCookie(w, tokenCookieName, tokens.AccessToken, true)
	s.setCookie(w, refreshCookieName, tokens.RefreshToken, true)
	s.SetUser(w, user)
}

func (s *SessionStore) SetTokens(w http.ResponseWriter, tokens *TokenResponse) {
	s.setCookie(w, tokenCookieName, tokens.AccessToken, true)
	s.setCookie(w, refreshCookieName, tokens.RefreshToken, true)
}

func (s *SessionStore) SetUser(w http.ResponseWriter, user SessionUser) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	s.setCookie(w, userCookieName, base64.RawURLEncoding.EncodeToString(data), false)
}

func (s *SessionStore) Clear(w http.ResponseWriter) {
	for _, name := range []string{tokenCookieName, refreshCookieName, userCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name != userCookieName,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (s *SessionStore) Token(r *http.Request) string {
	return cookieValue(r, tokenCookieName)
}

func (s *SessionStore) RefreshToken(r *http.Request) string {
	return cookieValue(r, refreshCookieName)
}

func (s *SessionStore) User(r *http.Request) (SessionUser, bool) {
	raw := cookieValue(r, userCookieName)
	if raw == "" {
		return SessionUser{}, false
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return SessionUser{}, false
	}
	var user SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return SessionUser{}, false
	}
	return user, true
}

func (s *SessionStore) setCookie(w http.ResponseWriter, name, value string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: httpOnly,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// UserFromAccessToken decodes the claims out of an access token without
// verifying it. The token was just received from the auth service over a
// trusted channel; verification is the protected services' job.
func UserFromAccessToken(accessToken string) (SessionUser, error) {
	claims := &models.Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return SessionUser{}, fmt.Errorf("failed to decode access token: %w", err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return SessionUser{}, fmt.Errorf("access token missing sub or email")
	}
	return SessionUser{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Username,
	}, nil
}
