package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"turmeric-trace/internal/utils/metrics"
)

type (
	// Backend is the transport to the content backend. Every call is bound to
	// ctx and authenticated with the caller's bearer token.
	Backend interface {
		Send(ctx context.Context, token string, req Request, out any) error
		Download(ctx context.Context, token string, fileURL string) (*Blob, error)
	}

	Request struct {
		Method string
		Path   string
		Query  url.Values
		Body   any

		// Collection labels metrics; defaults to the first path segment after /api.
		Collection string
	}

	Blob struct {
		Body          io.ReadCloser
		ContentType   string
		ContentLength int64
	}

	Client struct {
		baseURL *url.URL
		http    *http.Client
		metrics *metrics.Backend
	}

	Option func(*Client)
)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithMetrics(m *metrics.Backend) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Send(ctx context.Context, token string, r Request, out any) error {
	target := c.baseURL.String() + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		buf, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	collection := r.Collection
	if collection == "" {
		collection = collectionOf(r.Path)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe(collection, r.Method, 0, time.Since(start))
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()
	c.metrics.Observe(collection, r.Method, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, r.Method, r.Path)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err)
	}
	return nil
}

// Download fetches a file blob. Relative URLs (as returned for locally stored
// uploads) resolve against the backend base URL.
func (c *Client) Download(ctx context.Context, token string, fileURL string) (*Blob, error) {
	ref, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("parse file url: %w", err)
	}
	target := c.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	// Only send credentials to the backend itself, never to a third-party CDN.
	if token != "" && target.Host == c.baseURL.Host {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.Observe("upload", http.MethodGet, 0, time.Since(start))
		return nil, fmt.Errorf("download %s: %w", target.Path, err)
	}
	c.metrics.Observe("upload", http.MethodGet, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp, http.MethodGet, target.Path)
	}

	return &Blob{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

func collectionOf(path string) string {
	p := strings.TrimPrefix(path, "/api/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}
