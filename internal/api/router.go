package api

import (
	"github.com/gorilla/mux"
	"github.com/guardianlab/guardian/internal/handler"
	"github.com/guardianlab/guardian/internal/infrastructure/auth"
	"github.com/guardianlab/guardian/internal/infrastructure/observability"
)

// NewAuthRouter wires the authentication service surface. All routes are
// public; metrics cover every request.
func NewAuthRouter(h *handler.AuthHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.Metrics)
	h.RegisterRoutes(r)
	r.Handle("/metrics", observability.MetricsHandler())
	return r
}

// NewOnboardingRouter wires the onboarding surface: health stays public,
// everything else sits behind the access guard.
func NewOnboardingRouter(h *handler.OnboardingHandler, accessVerifier *auth.Verifier) *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.Metrics)
	h.RegisterPublicRoutes(r)
	r.Handle("/metrics", observability.MetricsHandler())

	protected := r.NewRoute().Subrouter()
	protected.Use(auth.Middleware(accessVerifier))
	h.RegisterProtectedRoutes(protected)
	return r
}

// NewProductRouter wires the public catalog surface.
func NewProductRouter(h *handler.ProductHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.Metrics)
	r.Handle("/metrics", observability.MetricsHandler())
	h.RegisterRoutes(r)
	return r
}
