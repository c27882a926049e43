package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bottlerun/bottlerun/internal/client/models"
)

const defaultTimeout = 12 * time.Second

// HTTPClient implements Client against the backend's JSON REST endpoints.
// The bearer token is guarded by a mutex because the session service sets
// and clears it while cart operations may be in flight.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "https://api.bottlerun.example". A non-positive timeout falls back to
// the default request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends a JSON request and decodes the JSON response into out.
// Transport failures wrap ErrUnavailable, a 401 wraps ErrUnauthorized,
// and any other non-2xx status becomes a RemoteError carrying the
// server's message when one is present.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t := c.bearer(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if msg := messageOf(data); msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := messageOf(data)
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &RemoteError{Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// messageOf extracts a "message" field from a response body, if any.
func messageOf(data []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return e.Message
}

type authResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    models.UserProfile `json:"user"`
}

type userResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	User    models.UserProfile `json:"user"`
}

type orderResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Order   OrderResult `json:"order"`
}

func remoteFailure(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &RemoteError{Message: message}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteFailure(resp.Message, "login failed")
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req *SignupRequest) (*models.UserProfile, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteFailure(resp.Message, "registration failed")
	}
	user := resp.User
	return &user, nil
}

func (c *HTTPClient) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/users/google-login", googleLoginRequest{IDToken: idToken}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteFailure(resp.Message, "google login failed")
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.UserProfile, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodPut, "/users/"+req.ID, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteFailure(resp.Message, "profile update failed")
	}
	user := resp.User
	return &user, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, remoteFailure(resp.Message, "order creation failed")
	}
	order := resp.Order
	return &order, nil
}
