// Package api implements the typed resource clients for the hospitalcm
// backend. Every response arrives in the {success, message, data} envelope;
// transport failures and envelope rejections are mapped onto the shared
// ClientError taxonomy so callers never inspect raw HTTP state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"go.uber.org/zap"

	"github.com/azauting/hospitalcm/internal/config"
	"github.com/azauting/hospitalcm/pkg/util"
)

// Client is the shared HTTP transport for all resource clients. The cookie
// jar carries the backend session cookie, matching the browser behavior the
// API was built for.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New builds a Client against the configured base URL.
func New(cfg config.APIConfig, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout(),
		},
		log: logger,
	}, nil
}

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do performs one request and returns the raw data payload. There is no
// retry: every failure is terminal for the caller that issued it.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, util.NewUnexpected(0, err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, util.NewUnexpected(0, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, util.NewNoConnection(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, util.NewUnauthorized(resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, util.NewServerError(resp.StatusCode)
	case resp.StatusCode >= 300:
		return nil, util.NewUnexpected(resp.StatusCode, nil)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, util.NewUnexpected(resp.StatusCode, err)
	}
	if !env.Success {
		c.log.Debug("envelope rejected", zap.String("path", path), zap.String("message", env.Message))
		return nil, util.NewAPIFailure(env.Message)
	}
	return env.Data, nil
}

// request decodes the data payload of a successful call into T.
func request[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, util.NewUnexpected(0, err)
	}
	return out, nil
}

// exec performs a call whose data payload the caller does not need.
func (c *Client) exec(ctx context.Context, method, path string, body any) error {
	_, err := c.do(ctx, method, path, body)
	return err
}
