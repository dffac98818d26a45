// Package client provides an HTTP and WebSocket client for the conversation API.
package client

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

	"github.com/gorilla/websocket"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/service"
)

// Client talks to the conversation API on behalf of one user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new client. token is sent as a bearer token and may be
// empty for anonymous calls.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// CreateConversation calls POST /v1/conversations.
func (c *Client) CreateConversation(ctx context.Context, to string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.do(ctx, http.MethodPost, "/v1/conversations", map[string]string{"to": to}, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations calls GET /v1/conversations.
func (c *Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var list []domain.Conversation
	if err := c.do(ctx, http.MethodGet, "/v1/conversations", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetConversation calls GET /v1/conversations/single/:id.
func (c *Client) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.do(ctx, http.MethodGet, "/v1/conversations/single/"+url.PathEscape(id), nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// MarkRead calls PUT /v1/conversations/:id.
func (c *Client) MarkRead(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.do(ctx, http.MethodPut, "/v1/conversations/"+url.PathEscape(id), nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Navigation calls GET /v1/navigation.
func (c *Client) Navigation(ctx context.Context, path string) (*service.NavigationView, error) {
	var view service.NavigationView
	if err := c.do(ctx, http.MethodGet, "/v1/navigation?path="+url.QueryEscape(path), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Session calls GET /v1/auth/session.
func (c *Client) Session(ctx context.Context) (*domain.Requester, error) {
	var r domain.Requester
	if err := c.do(ctx, http.MethodGet, "/v1/auth/session", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Watch streams conversation events to fn until ctx is done or the
// connection fails.
func (c *Client) Watch(ctx context.Context, fn func(domain.Event)) error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/v1/conversations/stream"
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial stream: %w (status %d)", err, resp.StatusCode)
		}
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stopped:
		}
	}()

	for {
		var ev domain.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		fn(ev)
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			return &APIError{Status: resp.StatusCode, Message: errResp.Message}
		}
		return &APIError{Status: resp.StatusCode, Message: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
