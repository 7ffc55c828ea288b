package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HTTPError is returned when an upstream API returns a non-2xx response.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// defaultHeaders makes requests look like a regular browser session; the
// lottery endpoints reject obvious non-browser clients.
var defaultHeaders = map[string]string{
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-GB,en;q=0.9,en-US;q=0.8",
	"Connection":      "keep-alive",
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36",
}

// Options configures a Client. All collaborators are passed in explicitly;
// the client holds no process-global state.
type Options struct {
	// Store holds raw response bodies keyed by CacheKey(url).
	Store Store

	// HTTPClient is the underlying transport. Defaults to a client with a
	// 60 second timeout.
	HTTPClient *http.Client

	// EnableWait turns on the politeness delay before each cache-miss
	// network call. Disabled in bulk/backfill runs where the cache absorbs
	// most of the load.
	EnableWait bool

	// WaitMin and WaitMax bound the uniformly random politeness delay.
	WaitMin time.Duration
	WaitMax time.Duration

	// Headers are merged over the default browser-like headers.
	Headers map[string]string
}

// Client fetches JSON payloads with persistent caching and an optional
// randomized delay before live requests.
type Client struct {
	store      Store
	httpClient *http.Client
	enableWait bool
	waitMin    time.Duration
	waitMax    time.Duration
	headers    map[string]string
	rng        *rand.Rand
}

// NewClient creates a fetch client from the given options.
func NewClient(opts Options) *Client {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	waitMin, waitMax := opts.WaitMin, opts.WaitMax
	if waitMax <= 0 {
		waitMin = 1 * time.Second
		waitMax = 3 * time.Second
	}

	headers := make(map[string]string, len(defaultHeaders)+len(opts.Headers))
	for k, v := range defaultHeaders {
		headers[k] = v
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		store:      store,
		httpClient: httpClient,
		enableWait: opts.EnableWait,
		waitMin:    waitMin,
		waitMax:    waitMax,
		headers:    headers,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get returns the raw JSON body for url, serving from the cache when
// possible. With skipCache set, the cache lookup is bypassed and the
// request always goes to the network; a successful response still
// refreshes the cache entry.
//
// Failed responses are never cached, so a later run retries the network.
func (c *Client) Get(ctx context.Context, url string, skipCache bool) ([]byte, error) {
	key := CacheKey(url)

	if !skipCache {
		if data, ok := c.store.Get(key); ok {
			log.WithField("url", url).Debug("Cache hit")
			return data, nil
		}
	}

	if c.enableWait {
		c.wait(ctx)
	}

	log.WithField("url", url).Info("Requesting")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := c.store.Put(key, body); err != nil {
		log.WithField("url", url).Warnf("Failed to write cache entry: %v", err)
	}

	return body, nil
}

// GetJSON fetches url via Get and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v interface{}, skipCache bool) error {
	body, err := c.Get(ctx, url, skipCache)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// wait sleeps for a uniformly random duration between waitMin and waitMax,
// returning early if the context is cancelled.
func (c *Client) wait(ctx context.Context) {
	span := c.waitMax - c.waitMin
	d := c.waitMin
	if span > 0 {
		d += time.Duration(c.rng.Int63n(int64(span)))
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
