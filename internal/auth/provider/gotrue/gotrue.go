package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"auth-bridge/internal/auth"
)

const providerName = "gotrue"

// maxBodySize caps how much of a provider response is read.
const maxBodySize = 1 << 20

// Client talks to a GoTrue-style password-auth API (the REST surface
// Supabase exposes under /auth/v1).
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func New(baseURL, anonKey string) (*Client, error) {
	if baseURL == "" || anonKey == "" {
		return nil, errors.New("gotrue config missing required fields")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return providerName
}

func (c *Client) SignInWithPassword(
	ctx context.Context,
	email string,
	password string,
) (*auth.Session, error) {

	body, err := c.post(ctx, "/token?grant_type=password", c.anonKey, credentialsBody{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("gotrue sign-in failed: %w", err)
	}

	var session auth.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("gotrue sign-in response parse failed: %w", err)
	}

	return &session, nil
}

func (c *Client) SignUp(
	ctx context.Context,
	email string,
	password string,
) (*auth.SignupResult, error) {

	body, err := c.post(ctx, "/signup", c.anonKey, credentialsBody{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("gotrue sign-up failed: %w", err)
	}

	// The signup response is either a bare user object (confirmation
	// pending) or a full session object (auto-confirm enabled). Decode
	// both shapes at once and pick by the presence of an access token.
	var payload struct {
		auth.Session
		auth.UserRecord
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("gotrue sign-up response parse failed: %w", err)
	}

	if payload.AccessToken != "" {
		session := payload.Session
		return &auth.SignupResult{
			Session: &session,
			User:    session.User,
		}, nil
	}

	result := &auth.SignupResult{}
	if payload.UserRecord.ID != "" || payload.UserRecord.Email != "" {
		user := payload.UserRecord
		result.User = &user
	}
	return result, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if _, err := c.post(ctx, "/logout", accessToken, nil); err != nil {
		return fmt.Errorf("gotrue sign-out failed: %w", err)
	}
	return nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*auth.UserRecord, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("gotrue get-user failed: %w", err)
	}

	var user auth.UserRecord
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("gotrue user response parse failed: %w", err)
	}

	return &user, nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) post(ctx context.Context, path, bearer string, payload any) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, bearer, payload)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	path string,
	bearer string,
	payload any,
) (*http.Request, error) {

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("gotrue request marshal failed: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

// apiError normalizes the two error shapes GoTrue emits:
// {"code":400,"msg":"..."} and {"error":"...","error_description":"..."}.
func apiError(status int, body []byte) error {
	var payload struct {
		Msg              string `json:"msg"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(body, &payload)

	message := payload.Msg
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	return &auth.ProviderError{
		Status:  status,
		Code:    payload.Error,
		Message: message,
	}
}
