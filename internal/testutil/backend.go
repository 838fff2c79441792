// Package testutil provides a fake content backend for package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"turmeric-trace/pkg/strapi"
)

type (
	Recorded struct {
		Method string
		Path   string
		Query  url.Values
		Auth   string
		Body   []byte
	}

	Backend struct {
		*httptest.Server

		mu       sync.Mutex
		routes   map[string]http.HandlerFunc
		requests []Recorded
	}
)

func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{routes: map[string]http.HandlerFunc{}}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	h, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"data":null,"error":{"status":404,"name":"NotFoundError","message":"Not Found"}}`)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	h(w, r)
}

func (b *Backend) Handle(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

// JSON registers a static JSON response.
func (b *Backend) JSON(method, path string, status int, body any) {
	b.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, status, body)
	})
}

func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) TotalHits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Recorded(nil), b.requests...)
}

// LastBody decodes the JSON body of the latest request to method+path.
func (b *Backend) LastBody(t *testing.T, method, path string, out any) {
	t.Helper()

	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			if err := json.Unmarshal(reqs[i].Body, out); err != nil {
				t.Fatalf("decode %s %s body: %v", method, path, err)
			}
			return
		}
	}
	t.Fatalf("no %s %s request recorded", method, path)
}

func (b *Backend) Client(t *testing.T) *strapi.Client {
	t.Helper()

	c, err := strapi.NewClient(b.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// List wraps items in a single-page collection envelope.
func List(items ...any) map[string]any {
	if items == nil {
		items = []any{}
	}
	return map[string]any{
		"data": items,
		"meta": map[string]any{"pagination": map[string]int{
			"page": 1, "pageSize": 100, "pageCount": 1, "total": len(items),
		}},
	}
}

func Item(item any) map[string]any {
	return map[string]any{"data": item}
}
