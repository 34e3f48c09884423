package usersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the users service. The zero token means unauthenticated
// requests; use WithToken for the admin endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient creates a client with a 10s request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Register calls the self-service registration endpoint.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSponsorUser registers a sponsor account. Requires an Admin token.
func (c *Client) CreateSponsorUser(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/create-sponsor-user", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSponsorUsers lists accounts holding the Sponsor role.
func (c *Client) ListSponsorUsers(ctx context.Context) ([]AccountSummary, error) {
	var out []AccountSummary
	if err := c.do(ctx, http.MethodGet, "/api/users/all-sponsors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers lists every account.
func (c *Client) ListUsers(ctx context.Context) ([]AccountSummary, error) {
	var out []AccountSummary
	if err := c.do(ctx, http.MethodGet, "/api/users/all-users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignRoles adds roles to an existing account.
func (c *Client) AssignRoles(ctx context.Context, username string, roles []string) (*AccountSummary, error) {
	var out AccountSummary
	path := "/api/users/" + url.PathEscape(username) + "/roles"
	if err := c.do(ctx, http.MethodPost, path, AssignRolesRequest{Roles: roles}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRoles returns the role vocabulary.
func (c *Client) ListRoles(ctx context.Context) ([]string, error) {
	var out ListRolesResponse
	if err := c.do(ctx, http.MethodGet, "/api/roles", nil, &out); err != nil {
		return nil, err
	}
	return out.Roles, nil
}

// Health calls /livez, or /readyz when ready is true.
func (c *Client) Health(ctx context.Context, ready bool) (*HealthResponse, error) {
	path := "/livez"
	if ready {
		path = "/readyz"
	}
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseErrorResponse(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
