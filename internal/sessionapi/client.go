package sessionapi

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
	"auth-bridge/internal/session"
)

const maxErrorBody = 8 << 10

// Client notifies the backend session endpoint that a provider
// authentication succeeded. The wire contract is fixed:
// POST {base}/set-session with {"access_token": ..., "user": ...};
// any 2xx means the session was established, a non-2xx body carries the
// rejection details.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("session endpoint URL is required")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type establishRequest struct {
	AccessToken string           `json:"access_token"`
	User        *auth.UserRecord `json:"user"`
}

// Establish implements flow.Establisher against the remote endpoint. When
// the endpoint hands the session back as a cookie, its value is returned
// so the caller can relay it to the client.
func (c *Client) Establish(
	ctx context.Context,
	accessToken string,
	user *auth.UserRecord,
) (string, error) {

	payload, err := json.Marshal(establishRequest{
		AccessToken: accessToken,
		User:        user,
	})
	if err != nil {
		return "", fmt.Errorf("session request marshal failed: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/set-session",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session endpoint request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &auth.SessionRejectedError{
			Status:  resp.StatusCode,
			Details: strings.TrimSpace(string(body)),
		}
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie.Value, nil
		}
	}

	// Established, but the endpoint manages the session itself.
	return "", nil
}
