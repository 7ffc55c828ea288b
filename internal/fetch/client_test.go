package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(store Store) *Client {
	return NewClient(Options{Store: store, EnableWait: false})
}

func TestGetCachesSuccessfulResponse(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	client := newTestClient(store)

	body, err := client.Get(context.Background(), srv.URL, false)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))

	// Identical URL is served from cache; no second network call
	body, err = client.Get(context.Background(), srv.URL, false)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetDistinctURLsGetDistinctEntries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(r.URL.RawQuery))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	client := newTestClient(store)

	_, err := client.Get(context.Background(), srv.URL+"?datum=2022-01-01", false)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), srv.URL+"?datum=2022-01-04", false)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 2, store.Len())
}

func TestGetDoesNotCacheFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	client := newTestClient(store)

	_, err := client.Get(context.Background(), srv.URL, false)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, 0, store.Len())

	// The failure was not cached, so the same URL retries the network
	body, err := client.Get(context.Background(), srv.URL, false)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetSkipCacheBypassesLookup(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"n":2}`))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	store.Seed(srv.URL, []byte(`{"n":1}`))
	client := newTestClient(store)

	// skipCache ignores the stale seeded entry and refreshes it
	body, err := client.Get(context.Background(), srv.URL, true)
	require.NoError(t, err)
	assert.Equal(t, `{"n":2}`, string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// A regular call now sees the refreshed entry
	body, err = client.Get(context.Background(), srv.URL, false)
	require.NoError(t, err)
	assert.Equal(t, `{"n":2}`, string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetServedFromSeededCacheWithoutNetwork(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("https://unreachable.invalid/api", []byte(`{"cached":true}`))
	client := newTestClient(store)

	body, err := client.Get(context.Background(), "https://unreachable.invalid/api", false)
	require.NoError(t, err)
	assert.Equal(t, `{"cached":true}`, string(body))
}

func TestGetSendsBrowserHeaders(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(Options{
		Store:   NewMemoryStore(),
		Headers: map[string]string{"Referer": "https://www.eurojackpot.de/"},
	})
	_, err := client.Get(context.Background(), srv.URL, false)
	require.NoError(t, err)
	assert.Contains(t, ua, "Mozilla/5.0")
}

func TestGetJSON(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("https://unreachable.invalid/years", []byte(`{"years":[{"year":2022}]}`))
	client := newTestClient(store)

	var payload struct {
		Years []struct {
			Year int `json:"year"`
		} `json:"years"`
	}
	err := client.GetJSON(context.Background(), "https://unreachable.invalid/years", &payload, false)
	require.NoError(t, err)
	require.Len(t, payload.Years, 1)
	assert.Equal(t, 2022, payload.Years[0].Year)
}
