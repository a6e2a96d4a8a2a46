package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/guardianlab/guardian/internal/infrastructure/observability"
)

const productsPageSize = 6

// Server renders the frontend pages and propagates the session to the
// backing services.
type Server struct {
	templates  *templates
	sessions   *SessionStore
	auth       *AuthClient
	products   *ProductsClient
	onboarding *OnboardingClient
}

func NewServer(auth *AuthClient, products *ProductsClient, onboarding *OnboardingClient, sessions *SessionStore) (*Server, error) {
	tmpl, err := newTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		templates:  tmpl,
		sessions:   sessions,
		auth:       auth,
		products:   products,
		onboarding: onboarding,
	}, nil
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.Metrics)
	r.Handle("/metrics", observability.MetricsHandler())

	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/login", s.handleLoginPage).Methods("GET")
	r.HandleFunc("/login", s.handleLoginSubmit).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("POST")

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireSession)
	protected.HandleFunc("/products", s.handleProducts).Methods("GET")
	protected.HandleFunc("/products/{id}", s.handleProductDetail).Methods("GET")
	protected.HandleFunc("/onboarding", s.handleOnboardingPage).Methods("GET")
	protected.HandleFunc("/onboarding", s.handleOnboardingSubmit).Methods("POST")
	return r
}

// requireSession redirects to the login page when no token cookie is
// present. Token validity is not checked here; the protected services do
// that, and an expired token triggers the refresh path on the outbound call.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.sessions.Token(r) == "" {
			loginURL := "/login?from=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, loginURL, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Token(r) == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

type loginPageData struct {
	User  SessionUser
	Error string
	From  string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.sessions.Token(r) != "" {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
		return
	}
	s.templates.render(w, "login", loginPageData{From: r.URL.Query().Get("from")})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.templates.render(w, "login", loginPageData{Error: "Invalid form submission"})
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	from := r.PostFormValue("from")

	tokens, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		slog.Warn("login request failed", "username", username, "error", err)
		s.templates.render(w, "login", loginPageData{Error: loginErrorMessage(err), From: from})
		return
	}

	user, err := UserFromAccessToken(tokens.AccessToken)
	if err != nil {
		slog.Error("access token decode failed", "error", err)
		s.templates.render(w, "login", loginPageData{Error: "Login failed, please try again"})
		return
	}

	s.sessions.Set(w, tokens, user)

	target := "/products"
	if from != "" && from[0] == '/' {
		target = from
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Stateless tokens need no server-side invalidation; clearing the
	// cookies ends the session.
	s.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type productsPageData struct {
	User     SessionUser
	Page     *ProductsPage
	PrevPage int
	NextPage int
	Error    string
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	result, err := s.products.List(r.Context(), page, productsPageSize)
	if err != nil {
		slog.Error("products fetch failed", "error", err)
		s.templates.render(w, "products", productsPageData{User: user, Error: "Failed to load products"})
		return
	}

	data := productsPageData{User: user, Page: result}
	if result.Meta.Page > 1 {
		data.PrevPage = result.Meta.Page - 1
	}
	if result.Meta.Page < result.Meta.TotalPages {
		data.NextPage = result.Meta.Page + 1
	}
	s.templates.render(w, "products", data)
}

func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	id := mux.Vars(r)["id"]

	product, err := s.products.Get(r.Context(), id)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		slog.Error("product fetch failed", "id", id, "error", err)
		http.Error(w, "failed to load product", http.StatusBadGateway)
		return
	}

	s.templates.render(w, "product", struct {
		User    SessionUser
		Product any
	}{User: user, Product: product})
}

type onboardingPageData struct {
	User    SessionUser
	Error   string
	Success *OnboardingResult
}

func (s *Server) handleOnboardingPage(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	s.templates.render(w, "onboarding", onboardingPageData{User: user})
}

func (s *Server) handleOnboardingSubmit(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.User(r)
	if err := r.ParseForm(); err != nil {
		s.templates.render(w, "onboarding", onboardingPageData{User: user, Error: "Invalid form submission"})
		return
	}

	monto, err := strconv.ParseFloat(r.PostFormValue("montoInicial"), 64)
	if err != nil {
		s.templates.render(w, "onboarding", onboardingPageData{User: user, Error: "Initial amount must be a number"})
		return
	}
	form := OnboardingForm{
		Nombre:       r.PostFormValue("nombre"),
		Documento:    r.PostFormValue("documento"),
		Email:        r.PostFormValue("email"),
		MontoInicial: monto,
	}

	var result *OnboardingResult
	callErr := s.withTokenRetry(w, r, func(token string) error {
		res, err := s.onboarding.Create(r.Context(), token, form)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if callErr != nil {
		if isUnauthorized(callErr) {
			s.sessions.Clear(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		slog.Error("onboarding submit failed", "error", callErr)
		s.templates.render(w, "onboarding", onboardingPageData{User: user, Error: requestErrorMessage(callErr)})
		return
	}

	user.OnboardingCompleted = true
	s.sessions.SetUser(w, user)
	s.templates.render(w, "onboarding", onboardingPageData{User: user, Success: result})
}

// withTokenRetry runs a protected call and, on a 401, performs one
// transparent refresh-and-retry when a refresh token is available. On refresh
// failure the original 401 is returned and the caller ends the session.
func (s *Server) withTokenRetry(w http.ResponseWriter, r *http.Request, call func(token string) error) error {
	err := call(s.sessions.Token(r))
	if err == nil || !isUnauthorized(err) {
		return err
	}

	refreshToken := s.sessions.RefreshToken(r)
	if refreshToken == "" {
		return err
	}
	tokens, refreshErr := s.auth.Refresh(r.Context(), refreshToken)
	if refreshErr != nil {
		slog.Warn("token refresh failed", "error", refreshErr)
		return err
	}
	s.sessions.SetTokens(w, tokens)
	return call(tokens.AccessToken)
}

func isUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func loginErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return "Invalid username or password"
	}
	return "Login failed, please try again"
}

func requestErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Request failed, please try again"
}
