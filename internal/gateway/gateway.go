// Package gateway is the single HTTP client configuration every API call
// goes through: an explicit, ordered middleware chain handling request
// correlation, tracing, logging, bearer-token injection, and the global
// session policy for authentication failures.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// TokenSource provides the current bearer token. It is read fresh on
// every outgoing request so a token change between requests takes
// effect without reconfiguring the client.
type TokenSource interface {
	Token() string
}

// Config configures the gateway client.
type Config struct {
	// BaseURL is the API base, e.g. https://host/api
	BaseURL string
	// Timeout bounds each request. Defaults to 30s.
	Timeout time.Duration
	// Tokens is the durable-storage token reader. Optional; without it
	// only the default Authorization header is used.
	Tokens TokenSource
}

// Client wraps one http.Client with the standard middleware chain.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource

	mu         sync.RWMutex
	authHeader string
	extra      []Middleware
}

// New creates a gateway client with the standard chain (request ID,
// tracing, logging, auth injection). Additional middleware such as the
// session policy is registered with Use.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     cfg.Tokens,
	}
}

// Use appends middleware to the chain. Registered middleware runs
// inside the standard observability stages and outside auth injection,
// so it observes classified request outcomes.
func (c *Client) Use(mw Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extra = append(c.extra, mw)
}

// SetAuthorization sets the default bearer Authorization header, used
// when no fresher token is available from the token source.
func (c *Client) SetAuthorization(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authHeader = "Bearer " + token
}

// ClearAuthorization removes the default Authorization header.
func (c *Client) ClearAuthorization() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authHeader = ""
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Headers are set verbatim and win over injected defaults.
	Headers map[string]string
	// Body is JSON-encoded unless it is already a []byte.
	Body any
	// Out, when non-nil, receives the JSON-decoded success body.
	Out any
}

// Execute runs one request through the middleware chain. Non-2xx
// responses surface as *StatusError after the chain's side effects.
func (c *Client) Execute(ctx context.Context, r Request) error {
	var bodyReader io.Reader
	if r.Body != nil {
		switch b := r.Body.(type) {
		case []byte:
			bodyReader = bytes.NewReader(b)
		default:
			data, err := json.Marshal(r.Body)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			bodyReader = bytes.NewReader(data)
		}
	}

	u := c.baseURL + "/" + strings.TrimPrefix(r.Path, "/")
	req, err := http.NewRequestWithContext(ctx, r.Method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request %s %s: %w", r.Method, r.Path, err)
	}
	if len(r.Query) > 0 {
		req.URL.RawQuery = r.Query.Encode()
	}
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.handler()(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if r.Out != nil {
		if err := json.NewDecoder(resp.Body).Decode(r.Out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// handler assembles the chain for one request, outermost first:
// request ID, tracing, logging, registered middleware (session policy),
// auth injection, then send + status classification.
func (c *Client) handler() Doer {
	c.mu.RLock()
	extra := make([]Middleware, len(c.extra))
	copy(extra, c.extra)
	c.mu.RUnlock()

	d := c.classify(c.send)
	d = c.injectAuth(d)
	for i := len(extra) - 1; i >= 0; i-- {
		d = extra[i](d)
	}
	d = Logging()(d)
	d = Tracing()(d)
	d = RequestID()(d)
	return d
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// injectAuth sets the bearer Authorization header. An explicit
// per-request header wins; otherwise the token is read fresh from the
// token source, falling back to the default header set by the session
// store. The fresh read is deliberate: it tolerates the token changing
// between requests.
func (c *Client) injectAuth(next Doer) Doer {
	return func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Authorization") == "" {
			if c.tokens != nil {
				if token := c.tokens.Token(); token != "" {
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}
			if req.Header.Get("Authorization") == "" {
				c.mu.RLock()
				header := c.authHeader
				c.mu.RUnlock()
				if header != "" {
					req.Header.Set("Authorization", header)
				}
			}
		}
		return next(req)
	}
}

// classify converts non-2xx responses into *StatusError, extracting the
// backend's message field when present.
func (c *Client) classify(next Doer) Doer {
	return func(req *http.Request) (*http.Response, error) {
		resp, err := next(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		defer resp.Body.Close()

		se := &StatusError{
			Code:      resp.StatusCode,
			RequestID: req.Header.Get(requestIDHeader),
		}
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if readErr == nil {
			var apiMsg struct {
				Msg string `json:"msg"`
			}
			if jsonErr := json.Unmarshal(body, &apiMsg); jsonErr == nil && apiMsg.Msg != "" {
				se.Msg = apiMsg.Msg
			} else {
				se.Msg = strings.TrimSpace(string(body))
			}
		}
		return nil, se
	}
}
