package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/guardianlab/guardian/internal/models"
)

// APIError is a non-2xx response from a collaborator service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// client wraps outbound HTTP with a bounded timeout and retries on 5xx.
// 4xx responses are terminal and never retried.
type client struct {
	baseURL string
	http    *http.Client
}

const maxRetries = 2 // 3 attempts total

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)})
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

func readErrorMessage(body io.Reader) string {
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil || resp.Error == "" {
		return "request failed"
	}
	return resp.Error
}

// TokenResponse mirrors the auth service's login/refresh payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type AuthClient struct {
	c *client
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{c: newClient(baseURL, 10*time.Second)}
}

func (a *AuthClient) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp TokenResponse
	if err := a.c.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp TokenResponse
	if err := a.c.doJSON(ctx, http.MethodPost, "/auth/refresh", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProductsPage mirrors the products service's paginated payload.
type ProductsPage struct {
	Data []models.Product `json:"data"`
	Meta struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"meta"`
}

type ProductsClient struct {
	c *client
}

func NewProductsClient(baseURL string) *ProductsClient {
	return &ProductsClient{c: newClient(baseURL, 10*time.Second)}
}

func (p *ProductsClient) List(ctx context.Context, page, limit int) (*ProductsPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	var resp ProductsPage
	if err := p.c.doJSON(ctx, http.MethodGet, "/products?"+query.Encode(), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *ProductsClient) Get(ctx context.Context, id string) (*models.Product, error) {
	var resp models.Product
	if err := p.c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OnboardingForm is the body sent to the onboarding service.
type OnboardingForm struct {
	Nombre       string  `json:"nombre"`
	Documento    string  `json:"documento"`
	Email        string  `json:"email"`
	MontoInicial float64 `json:"montoInicial"`
}

// OnboardingResult is the onboarding service's creation payload.
type OnboardingResult struct {
	OnboardingID string `json:"onboardingId"`
	Status       string `json:"status"`
}

type OnboardingClient struct {
	c *client
}

func NewOnboardingClient(baseURL string) *OnboardingClient {
	return &OnboardingClient{c: newClient(baseURL, 15*time.Second)}
}

func (o *OnboardingClient) Create(ctx context.Context, token string, form OnboardingForm) (*OnboardingResult, error) {
	var resp OnboardingResult
	if err := o.c.doJSON(ctx, http.MethodPost, "/onboarding", token, form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
