package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRetriesOn5xx(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	c := newClient(server.URL, 5*time.Second)
	var out map[string]string
	err := c.doJSON(context.Background(), http.MethodGet, "/", "", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "yes", out["ok"])
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClientGivesUpAfterThreeAttempts(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newClient(server.URL, 5*time.Second)
	err := c.doJSON(context.Background(), http.MethodGet, "/", "", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestClientDoesNotRetry4xx(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
	}))
	defer server.Close()

	c := newClient(server.URL, 5*time.Second)
	err := c.doJSON(context.Background(), http.MethodGet, "/", "", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid token", apiErr.Message)
	assert.EqualValues(t, 1, attempts.Load())
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"onboardingId": "x", "status": "REQUESTED"})
	}))
	defer server.Close()

	oc := NewOnboardingClient(server.URL)
	result, err := oc.Create(context.Background(), "the-token", OnboardingForm{
		Nombre: "Juan", Documento: "1", Email: "j@e.com", MontoInicial: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer the-token", gotAuth)
	assert.Equal(t, "REQUESTED", result.Status)
}
