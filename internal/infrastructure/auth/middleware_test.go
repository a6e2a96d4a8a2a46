package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	verifier, err := NewVerifier(testAccessSecret)
	require.NoError(t, err)

	var handlerCalled bool
	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotSubject = claims.Subject
		w.WriteHeader(http.StatusOK)
	})
	guarded := Middleware(verifier)(next)

	t.Run("no authorization header", func(t *testing.T) {
		handlerCalled = false
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest("POST", "/onboarding", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handlerCalled)
	})

	t.Run("malformed header", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest("POST", "/onboarding", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handlerCalled)
	})

	t.Run("valid token reaches handler with identity", func(t *testing.T) {
		handlerCalled = false
		issuer := newTestIssuer(t, nil)
		pair, err := issuer.Issue(testUser)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/onboarding", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, handlerCalled)
		assert.Equal(t, testUser.ID, gotSubject)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		handlerCalled = false
		clock := &fakeClock{t: time.Now().Add(-time.Hour)}
		issuer := newTestIssuer(t, clock)
		pair, err := issuer.Issue(testUser)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/onboarding", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, handlerCalled)
	})
}
