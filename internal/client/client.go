package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
	"github.com/five82/logdesk/internal/registry"
)

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// Client talks to a logdesk server.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8181"
	defaultUserAgent = "logdesk/0.1"
	requestTimeout   = 10 * time.Second
)

// New builds a Client using the provided apiBind host:port value.
func New(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}, nil
}

// Entries fetches entries matching q. An unknown source maps back to
// catalog.ErrUnknownSource and a rejected level to logentry.ErrInvalidLevel.
func (c *Client) Entries(ctx context.Context, q catalog.Query) ([]logentry.Entry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if source := strings.TrimSpace(q.Source); source != "" {
		values.Set("source", source)
	}
	values.Set("count", strconv.Itoa(q.Count))
	if level := strings.TrimSpace(q.Level); level != "" {
		values.Set("level", level)
	}
	if component := q.Component; component != "" {
		values.Set("component", component)
	}
	rel := &url.URL{Path: "/log/entries", RawQuery: values.Encode()}

	var entries []logentry.Entry
	err := c.doURL(ctx, http.MethodGet, rel, nil, &entries)
	var status *StatusError
	if errors.As(err, &status) {
		switch status.Code {
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownSource, q.Source)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", logentry.ErrInvalidLevel, status.Message)
		}
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Sources fetches the server's source names.
func (c *Client) Sources(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var sources []string
	if err := c.do(ctx, http.MethodGet, "/log/sources", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// Loggers fetches the server's registered loggers.
func (c *Client) Loggers(ctx context.Context, withLevel bool) ([]registry.LoggerInfo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/log", RawQuery: url.Values{"level": {strconv.FormatBool(withLevel)}}.Encode()}
	var loggers []registry.LoggerInfo
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &loggers); err != nil {
		return nil, err
	}
	return loggers, nil
}

// SetLoggerLevel changes the level of name, or of every logger when name
// is empty.
func (c *Client) SetLoggerLevel(ctx context.Context, name, level string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(level) == "" {
		return fmt.Errorf("%w: level is empty", registry.ErrInvalidLevel)
	}
	body := struct {
		LoggerName string `json:"logger_name"`
		LogLevel   string `json:"log_level"`
	}{LoggerName: name, LogLevel: level}

	err := c.do(ctx, http.MethodPost, "/log", body, nil)
	var status *StatusError
	if errors.As(err, &status) {
		switch status.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", registry.ErrUnknownLogger, name)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", registry.ErrInvalidLevel, level)
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &StatusError{Path: rel.Path, Code: resp.StatusCode, Message: apiErr.Error}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
