// Package api is the typed HTTP client for the storefront backend. It owns
// query-string building, bearer-token injection, and the error taxonomy:
// transport failures wrap the underlying error, non-2xx responses become
// *domain.HTTPError with the body's message when one was sent, and 404s on
// single-resource lookups match domain.ErrNotFound.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"fiesta-storefront/internal/domain"
	"github.com/go-playground/validator/v10"
)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	validate *validator.Validate
	logger   *log.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New builds a Client for the given base URL (for example "http://host/api").
// A trailing slash is stripped so path joins stay predictable.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		validate: validator.New(),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenSource wires the session after construction; the session itself
// needs the client to log in, so the two are tied together in main.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		herr := httpError(res)
		c.logger.Printf("api: %s %s status=%d message=%q", method, path, res.StatusCode, herr.Message)
		return herr
	}
	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// checkInput runs struct-tag validation before any network call, mapping
// failures to *domain.ValidationError.
func (c *Client) checkInput(in any) error {
	err := c.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError("invalid %s: failed %q check", fe.Field(), fe.Tag())
	}
	return domain.NewValidationError("invalid input: %v", err)
}

// httpError extracts the backend's "message" field, tolerating both the
// plain-string and string-array shapes error bodies come in.
func httpError(res *http.Response) *domain.HTTPError {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))

	var withString struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &withString); err == nil && withString.Message != "" {
		return &domain.HTTPError{Status: res.StatusCode, Message: withString.Message}
	}

	var withList struct {
		Message []string `json:"message"`
	}
	if err := json.Unmarshal(body, &withList); err == nil && len(withList.Message) > 0 {
		return &domain.HTTPError{Status: res.StatusCode, Message: strings.Join(withList.Message, ", ")}
	}

	return &domain.HTTPError{Status: res.StatusCode}
}
