// Package chatapi is the client for the remote chat collaborator. The
// service is opaque: two JSON POST endpoints, with transport failure or
// a non-2xx status as the only error signal.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hanabira/hanachat/internal/domain"
)

const (
	chatPath    = "/chat"
	newUserPath = "/new-user"
)

// Request is the body of both endpoints.
type Request struct {
	Message  string `json:"message"`
	UserName string `json:"user_name"`
}

// Client talks to the remote chat service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat sends one user message and returns the reply payload.
func (c *Client) Chat(ctx context.Context, message, userName string) (domain.ChatReply, error) {
	var reply domain.ChatReply

	body, err := c.post(ctx, chatPath, Request{Message: message, UserName: userName})
	if err != nil {
		return reply, err
	}

	if err := json.Unmarshal(body, &reply); err != nil {
		return reply, fmt.Errorf("decode chat reply: %w", err)
	}
	return reply, nil
}

// NotifyNewUser tells the service to clear its data for userName. The
// response body is ignored; callers treat failure as best-effort.
func (c *Client) NotifyNewUser(ctx context.Context, userName string) error {
	_, err := c.post(ctx, newUserPath, Request{Message: "", UserName: userName})
	return err
}

func (c *Client) post(ctx context.Context, path string, payload Request) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
