package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backends struct {
	auth       *httptest.Server
	products   *httptest.Server
	onboarding *httptest.Server
}

func newTestServer(t *testing.T, b backends) *Server {
	t.Helper()
	authURL, productsURL, onboardingURL := "http://127.0.0.1:0", "http://127.0.0.1:0", "http://127.0.0.1:0"
	if b.auth != nil {
		authURL = b.auth.URL
	}
	if b.products != nil {
		productsURL = b.products.URL
	}
	if b.onboarding != nil {
		onboardingURL = b.onboarding.URL
	}
	srv, err := NewServer(
		NewAuthClient(authURL),
		NewProductsClient(productsURL),
		NewOnboardingClient(onboardingURL),
		NewSessionStore(false),
	)
	require.NoError(t, err)
	return srv
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	router := newTestServer(t, backends{}).Router()

	for _, path := range []string{"/products", "/products/1", "/onboarding"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		location := rec.Header().Get("Location")
		assert.True(t, strings.HasPrefix(location, "/login?from="), location)
		assert.Equal(t, path, mustQueryParam(t, location, "from"))
	}
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	router := newTestServer(t, backends{}).Router()

	req := httptest.NewRequest("GET", "/login", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "some-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))
}

func TestLoginSubmitSetsSessionCookies(t *testing.T) {
	accessToken := signTestToken(t, "1", "admin", "admin@guardian.com")
	authBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["username"] != "admin" || req["password"] != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  accessToken,
			TokenType:    "Bearer",
			ExpiresIn:    300,
			RefreshToken: "the-refresh-token",
		})
	}))
	defer authBackend.Close()

	router := newTestServer(t, backends{auth: authBackend}).Router()

	form := url.Values{"username": {"admin"}, "password": {"password123"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))

	cookies := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	require.Contains(t, cookies, "auth_token")
	assert.Equal(t, accessToken, cookies["auth_token"].Value)
	require.Contains(t, cookies, "refresh_token")
	assert.Equal(t, "the-refresh-token", cookies["refresh_token"].Value)
	require.Contains(t, cookies, "user_data")
}

func TestLoginSubmitShowsGenericErrorOnBadCredentials(t *testing.T) {
	authBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer authBackend.Close()

	router := newTestServer(t, backends{auth: authBackend}).Router()

	form := url.Values{"username": {"admin"}, "password": {"nope1234"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsSession(t *testing.T) {
	router := newTestServer(t, backends{}).Router()

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "x"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	for _, cookie := range rec.Result().Cookies() {
		assert.Less(t, cookie.MaxAge, 0, cookie.Name)
	}
}

func TestProductsPageRendersCatalog(t *testing.T) {
	productsBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		var page ProductsPage
		page.Data = nil
		page.Meta.Page = 2
		page.Meta.Limit = 6
		page.Meta.Total = 8
		page.Meta.TotalPages = 2
		json.NewEncoder(w).Encode(page)
	}))
	defer productsBackend.Close()

	router := newTestServer(t, backends{products: productsBackend}).Router()

	req := httptest.NewRequest("GET", "/products?page=2", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 2 of 2")
	assert.Contains(t, rec.Body.String(), "Previous")
}

func TestOnboardingSubmitRefreshesOnExpiredToken(t *testing.T) {
	freshToken := signTestToken(t, "1", "admin", "admin@guardian.com")
	authBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken:  freshToken,
			TokenType:    "Bearer",
			ExpiresIn:    300,
			RefreshToken: "rotated-refresh",
		})
	}))
	defer authBackend.Close()

	onboardingBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+freshToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"onboardingId": "abc-123", "status": "REQUESTED"})
	}))
	defer onboardingBackend.Close()

	router := newTestServer(t, backends{auth: authBackend, onboarding: onboardingBackend}).Router()

	form := url.Values{
		"nombre":       {"Juan"},
		"documento":    {"123"},
		"email":        {"juan@example.com"},
		"montoInicial": {"1000"},
	}
	req := httptest.NewRequest("POST", "/onboarding", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "stale-token"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old-refresh"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "abc-123")
	assert.Contains(t, rec.Body.String(), "REQUESTED")

	cookies := map[string]*http.Cookie{}
	for _, cookie := range rec.Result().Cookies() {
		cookies[cookie.Name] = cookie
	}
	require.Contains(t, cookies, "auth_token")
	assert.Equal(t, freshToken, cookies["auth_token"].Value)
	assert.Equal(t, "rotated-refresh", cookies["refresh_token"].Value)
}

func TestOnboardingSubmitRedirectsToLoginWhenRefreshFails(t *testing.T) {
	authBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "refresh token invalid or expired"})
	}))
	defer authBackend.Close()

	onboardingBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
	}))
	defer onboardingBackend.Close()

	router := newTestServer(t, backends{auth: authBackend, onboarding: onboardingBackend}).Router()

	form := url.Values{
		"nombre":       {"Juan"},
		"documento":    {"123"},
		"email":        {"juan@example.com"},
		"montoInicial": {"1000"},
	}
	req := httptest.NewRequest("POST", "/onboarding", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "stale-token"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "dead-refresh"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func mustQueryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query().Get(key)
}
