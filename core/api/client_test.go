package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"doorsync/core/api"
	"doorsync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *api.Client {
	return api.NewClient(api.Options{
		BaseURL:     baseURL,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	})
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := newTestClient(server.URL).GetJSON(context.Background(), "/thing", &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ExhaustedRetriesAreTransient(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "still down", http.StatusBadGateway)
	}))
	defer server.Close()

	err := newTestClient(server.URL).GetJSON(context.Background(), "/thing", nil)

	assert.ErrorIs(t, err, reconcile.ErrTransient)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_AuthRejectionIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer server.Close()

	err := newTestClient(server.URL).GetJSON(context.Background(), "/thing", nil)

	assert.ErrorIs(t, err, reconcile.ErrAuth)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	err := newTestClient(server.URL).GetJSON(context.Background(), "/missing", nil)

	assert.ErrorIs(t, err, reconcile.ErrNotFound)
}

func TestClient_AuthorizeHeaders(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := api.NewClient(api.Options{
		BaseURL:   server.URL,
		Authorize: api.BearerAuth("seam-key"),
	})
	require.NoError(t, client.GetJSON(context.Background(), "/locks/list", nil))
	assert.Equal(t, "Bearer seam-key", gotAuth)
}
