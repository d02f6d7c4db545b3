package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/jacksonlee411/medcover-console/pkg/logger"
	"github.com/jacksonlee411/medcover-console/pkg/uuidv7"
)

const defaultTimeout = 10 * time.Second

// ErrNotFound matches any *HTTPError with status 404.
var ErrNotFound = errors.New("backend: not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.With("gateway")
		}
	}
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend: http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// UserMessage extracts the message to show an operator: the backend's own message for
// HTTP errors, nothing otherwise.
func UserMessage(err error) (string, bool) {
	httpErr, ok := errors.AsType[*HTTPError](err)
	if !ok {
		return "", false
	}
	msg := strings.TrimSpace(httpErr.Message)
	if msg == "" {
		return "", false
	}
	return msg, true
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("backend: missing base url")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.New("backend: invalid base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("backend: invalid base url scheme")
	}
	if u.Host == "" {
		return nil, errors.New("backend: invalid base url host")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuidv7.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("backend call failed")
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("backend call")

	if resp.StatusCode/100 != 2 {
		return readHTTPError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// readHTTPError prefers the backend's {"error": "..."} message over the raw body.
func readHTTPError(resp *http.Response) error {
	const maxBody = 4096
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	msg := strings.TrimSpace(string(b))
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &envelope); err == nil {
		switch {
		case strings.TrimSpace(envelope.Error) != "":
			msg = envelope.Error
		case strings.TrimSpace(envelope.Message) != "":
			msg = envelope.Message
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
}

type createdResponse struct {
	ID string `json:"id"`
}

func itemPath(collection string, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("backend: missing record id")
	}
	return "/" + collection + "/" + url.PathEscape(id), nil
}

func list[T any](ctx context.Context, c *Client, collection string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, "/"+collection, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, collection string, id string) (T, error) {
	var out T
	path, err := itemPath(collection, id)
	if err != nil {
		return out, err
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

func create(ctx context.Context, c *Client, collection string, in any) (string, error) {
	var out createdResponse
	if err := c.do(ctx, http.MethodPost, "/"+collection, in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func update(ctx context.Context, c *Client, collection string, id string, in any) error {
	path, err := itemPath(collection, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, in, nil)
}

func remove(ctx context.Context, c *Client, collection string, id string) error {
	path, err := itemPath(collection, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
