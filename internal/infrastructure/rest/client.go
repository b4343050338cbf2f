// Package rest implements the uniform HTTP request layer and the two
// domain API clients built on top of it. Every call re-reads the access
// token from the state store, attaches it as a bearer header, and
// normalizes non-2xx responses into *APIError. Login is the exception:
// it surfaces the server's structured validation body as *CredentialError.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/ports"
	"github.com/taskdesk/client-go/internal/metrics"
)

// Client executes requests against one fixed base URL. It holds no
// per-request state; the access token is read from the store on every
// call, so a token cleared mid-flight by an unrelated action is picked up
// by the next request, never the in-flight one.
type Client struct {
	baseURL  string
	http     *http.Client
	store    ports.StateStore
	validate *validator.Validate
	log      zerolog.Logger
}

// NewClient builds a Client for the given base URL. httpClient may be nil,
// in which case http.DefaultClient is used (no timeout; cancellation is
// driven by the caller's context).
func NewClient(baseURL string, store ports.StateStore, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// do performs one request. out may be nil when no response body is
// expected; a 204 always yields no value regardless of out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	token, err := c.store.Get(ctx, ports.KeyAccessToken)
	if err != nil {
		// A broken or empty store degrades to an unauthenticated request;
		// the server rejects it and the failure stays local to the caller.
		token = ""
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.send(req, method)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{Status: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doLogin performs the login POST. No bearer header is attached, and a
// non-2xx response is decoded into *CredentialError instead of *APIError.
func (c *Client) doLogin(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req, http.MethodPost)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		credErr := &CredentialError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(credErr); err != nil {
			c.log.Debug().Err(err).Int("status", resp.StatusCode).Msg("login error body not decodable")
		}
		return credErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) send(req *http.Request, method string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("request completed")
	return resp, nil
}

// checkPayload validates an outgoing payload before it hits the wire, so
// obviously malformed drafts fail fast with a readable message.
func (c *Client) checkPayload(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
