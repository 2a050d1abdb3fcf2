// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the backend clients.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes bounds how much of a JSON response is read.
const MaxBodyBytes = 8 << 20

// ErrNotJSON is wrapped when a response body cannot be decoded as JSON.
var ErrNotJSON = errors.New("response is not JSON")

// ErrBodyTooLarge is returned when a response exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// Headers carries the identification sent with every request.
type Headers struct {
	// UserAgent is sent as User-Agent when non-empty.
	UserAgent string
	// Token is sent as a bearer Authorization header when non-empty.
	Token string
}

// Apply sets the headers on req.
func (h Headers) Apply(req *http.Request) {
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
}

// NewJSONRequest builds a request whose body is v encoded as JSON.
func NewJSONRequest(ctx context.Context, method, url string, v any) (*http.Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// DecodeJSON reads resp.Body into v regardless of the status code, since
// backends report failures as JSON bodies on 4xx and 5xx responses. The
// body is closed. A non-JSON body yields an error naming the status.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("reading HTTP %d response: %w", resp.StatusCode, err)
	}
	if len(data) > MaxBodyBytes {
		return fmt.Errorf("HTTP %d: %w", resp.StatusCode, ErrBodyTooLarge)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("HTTP %d: %w: %v", resp.StatusCode, ErrNotJSON, err)
	}
	return nil
}
