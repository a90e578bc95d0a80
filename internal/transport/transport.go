// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transport fetches marketplace pages with browser-like headers.
// It tries an ordered list of strategies: a plain HTTP client first, then a
// curl subprocess carrying the same headers. There is exactly one fallback
// and no retrying beyond it.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"time"
)

// DefaultUserAgent is a desktop browser string; the marketplace serves
// anti-bot pages to obvious robots.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// browserHeaders is the fixed header set sent with every request.
// Accept-Encoding is left to the HTTP transport on the primary path so the
// body arrives transparently decoded; the curl path passes --compressed.
func browserHeaders(userAgent string) [][2]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return [][2]string{
		{"User-Agent", userAgent},
		{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"},
		{"Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8"},
		{"Sec-Fetch-Dest", "document"},
		{"Sec-Fetch-Mode", "navigate"},
		{"Sec-Fetch-Site", "none"},
		{"Upgrade-Insecure-Requests", "1"},
	}
}

// Error reports a transport failure after all strategies were tried.
type Error struct {
	URL    string
	Status int // last non-success HTTP status, 0 for network failures
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Strategy fetches one URL within a deadline. Strategies share a single
// contract so the client can try them in sequence.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}

// Client tries each strategy in order and returns the first success. On
// total failure it returns an *Error describing the last attempt.
type Client struct {
	Strategies []Strategy
}

// New builds the default client: net/http primary, curl fallback, both
// carrying the same browser header set.
func New(userAgent string) *Client {
	return &Client{Strategies: []Strategy{
		&HTTPStrategy{Client: http.DefaultClient, UserAgent: userAgent},
		&CurlStrategy{UserAgent: userAgent, exec: defaultExec},
	}}
}

// Fetch retrieves url, trying each strategy in order.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	var last error
	for _, s := range c.Strategies {
		body, err := s.Fetch(ctx, url, timeout)
		if err == nil {
			return body, nil
		}
		last = err
	}
	if terr, ok := last.(*Error); ok {
		return nil, terr
	}
	return nil, &Error{URL: url, Err: last}
}

// HTTPStrategy fetches with net/http, following redirects and aborting when
// the deadline elapses. Any non-2xx status is a failure.
type HTTPStrategy struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the strategy identifier.
func (s *HTTPStrategy) Name() string { return "http" }

// Fetch performs the GET.
func (s *HTTPStrategy) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	for _, h := range browserHeaders(s.UserAgent) {
		req.Header.Set(h[0], h[1])
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	return body, nil
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunCapture(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunCapture(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

var defaultExec executor = &osExecutor{}

// CurlStrategy shells out to curl with the same header set. Deadlines are
// expressed in whole seconds (rounded up) via --max-time, and --fail turns
// HTTP errors into non-zero exits.
type CurlStrategy struct {
	UserAgent string
	exec      executor
}

// Name returns the strategy identifier.
func (s *CurlStrategy) Name() string { return "curl" }

// Fetch performs the GET through curl.
func (s *CurlStrategy) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ex := s.exec
	if ex == nil {
		ex = defaultExec
	}
	if _, err := ex.LookPath("curl"); err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("curl not available: %w", err)}
	}

	args := []string{"--silent", "--show-error", "--location", "--fail", "--compressed"}
	if timeout > 0 {
		secs := int((timeout + time.Second - 1) / time.Second)
		args = append(args, "--max-time", fmt.Sprintf("%d", secs))
	}
	for _, h := range browserHeaders(s.UserAgent) {
		args = append(args, "--header", h[0]+": "+h[1])
	}
	args = append(args, url)

	body, err := ex.RunCapture(ctx, "curl", args...)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("curl: %w", err)}
	}
	return body, nil
}
