// Package client talks to the tracker HTTP API on behalf of the wellnest
// CLI and keeps the CLI's local view of logs and dashboards.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/service"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// AuthResult is the signup/login answer.
type AuthResult struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) Signup(ctx context.Context, fullName, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"fullName": fullName, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	var out service.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLog removes one entry of the given kind on the server.
func (c *Client) DeleteLog(ctx context.Context, kind domain.Kind, id string) error {
	path, err := logPath(kind)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path+"/"+id, nil, nil)
}

// ListLogs fetches the caller's entries of one kind, newest first.
func ListLogs[E domain.Entry](ctx context.Context, c *Client, kind domain.Kind) ([]E, error) {
	path, err := logPath(kind)
	if err != nil {
		return nil, err
	}
	var out []E
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func logPath(kind domain.Kind) (string, error) {
	switch kind {
	case domain.KindWater:
		return "/api/v1/water", nil
	case domain.KindSleep:
		return "/api/v1/sleep", nil
	case domain.KindWorkout:
		return "/api/v1/workouts", nil
	case domain.KindMeal:
		return "/api/v1/meals", nil
	}
	return "", fmt.Errorf("unknown log kind %q", kind)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
