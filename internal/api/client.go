// Package api wraps the authenticated HTTP surface of the Melio backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"melio/internal/logger"
	"melio/internal/model"
)

var (
	// ErrUnauthorized is a hard auth failure: either no token, or a 401
	// that survived the single refresh attempt.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrNotFound maps 404 responses. Callers treat it as benign where the
	// backend returns it for an unauthenticated context.
	ErrNotFound = errors.New("api: not found")
)

// StatusError carries any other non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Body)
}

// TokenStore is the session-owned token state the client reads and writes.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
	// Purge drops all session state. Called when refresh fails, forcing
	// the app back to the unauthenticated entry point.
	Purge()
}

type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenStore
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// do runs one authenticated request. On a 401 it refreshes the access token
// once and replays the original request; a second 401 propagates as
// ErrUnauthorized without another attempt.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.once(ctx, method, path, body, out, c.tokens.AccessToken())
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		c.tokens.Purge()
		return ErrUnauthorized
	}

	var auth model.AuthResponse
	if rerr := c.once(ctx, "POST", "/auth/refresh", model.RefreshRequest{RefreshToken: refresh}, &auth, ""); rerr != nil || auth.AccessToken == "" {
		logger.Warn("api.refresh_failed", "err", rerr)
		c.tokens.Purge()
		return ErrUnauthorized
	}
	c.tokens.SetTokens(auth.AccessToken, auth.RefreshToken)
	logger.Debug("api.token_refreshed")

	return c.once(ctx, method, path, body, out, auth.AccessToken)
}

// once is a single request with no retry.
func (c *Client) once(ctx context.Context, method, path string, body, out any, token string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
