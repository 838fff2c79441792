package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type farm struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	FarmName   string `json:"farm_name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestListSendsTokenAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/farms", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "*", r.URL.Query().Get("populate"))
		assert.Equal(t, "7", r.URL.Query().Get("filters[user][id][$eq]"))
		_, _ = io.WriteString(w, `{"data":[{"id":1,"documentId":"a1","farm_name":"North"}],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":1}}}`)
	})

	items, meta, err := List[farm](context.Background(), c, "tok", "farms", PopulateAll().Where(Eq("7", "user", "id")))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "North", items[0].FarmName)
	assert.Equal(t, 1, meta.Pagination.Total)
}

func TestListAllWalksPages(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		page, _ := strconv.Atoi(r.URL.Query().Get("pagination[page]"))
		assert.Equal(t, "100", r.URL.Query().Get("pagination[pageSize]"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []farm{{ID: page, DocumentID: "d" + strconv.Itoa(page)}},
			"meta": map[string]any{"pagination": map[string]int{"page": page, "pageSize": 100, "pageCount": 3, "total": 3}},
		})
	})

	items, err := ListAll[farm](context.Background(), c, "tok", "farms", Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{items[0].ID, items[1].ID, items[2].ID})
}

func TestCreateWrapsBodyInData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "South", body["data"]["farm_name"])
		_, _ = io.WriteString(w, `{"data":{"id":9,"documentId":"z9","farm_name":"South"}}`)
	})

	created, err := Create[farm](context.Background(), c, "tok", "farms", map[string]any{"farm_name": "South"})
	require.NoError(t, err)
	assert.Equal(t, "z9", created.DocumentID)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/farms/z9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, Delete(context.Background(), c, "tok", "farms", "z9"))
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"data":null,"error":{"status":`+strconv.Itoa(tt.status)+`,"name":"Err","message":"nope"}}`)
			})

			_, err := Find[farm](context.Background(), c, "tok", "farms", "x", Query{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "nope", se.Message)
		})
	}
}

func TestFindNullDataIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":null}`)
	})

	_, err := Find[farm](context.Background(), c, "tok", "farms", "x", Query{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLegacyAttributesShapeRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":1,"attributes":{"farm_name":"Old"}}]}`)
	})

	_, _, err := List[farm](context.Background(), c, "tok", "farms", Query{})
	assert.ErrorIs(t, err, ErrLegacyShape)
}

func TestCancelledContextStopsRequest(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := List[farm](ctx, c, "tok", "farms", Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownloadResolvesRelativeURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/uploads/cert.pdf", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF")
	})

	blob, err := c.Download(context.Background(), "tok", "/uploads/cert.pdf")
	require.NoError(t, err)
	defer blob.Body.Close()

	body, _ := io.ReadAll(blob.Body)
	assert.Equal(t, "%PDF", string(body))
	assert.Equal(t, "application/pdf", blob.ContentType)
}

func TestMeAndLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/local":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "ana", body["identifier"])
			_, _ = io.WriteString(w, `{"jwt":"backend-jwt","user":{"id":3,"username":"ana"}}`)
		case "/api/users/me":
			assert.Equal(t, "Bearer backend-jwt", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"id":3,"username":"ana","user_role":"Farmer"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	res, err := Login(context.Background(), c, "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", res.JWT)

	me, err := Me(context.Background(), c, res.JWT)
	require.NoError(t, err)
	assert.Equal(t, "Farmer", me.RoleName())
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("cms.local", time.Second)
	assert.Error(t, err)
}
