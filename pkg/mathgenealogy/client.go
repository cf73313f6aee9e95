package mathgenealogy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mklemetti/geneagraph/pkg/cache"
	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
	"github.com/mklemetti/geneagraph/pkg/httputil"
	"github.com/mklemetti/geneagraph/pkg/observability"
)

// DefaultBaseURL is the Math Genealogy Project site root.
const DefaultBaseURL = "https://www.mathgenealogy.org"

const (
	httpTimeout = 30 * time.Second
	userAgent   = "geneagraph (+https://github.com/mklemetti/geneagraph)"
)

// Client fetches genealogy records over HTTP.
// It handles response caching and automatic retries for transient failures.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	baseURL string
	ttl     time.Duration
	retry   func(context.Context, func() error) error
}

// NewClient creates a Client with the given cache backend.
//
// An empty baseURL selects [DefaultBaseURL]. The ttl controls how long
// fetched records stay cached; pass cache.NullCache{} as the store to
// disable caching entirely.
func NewClient(store cache.Cache, baseURL string, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		retry:   httputil.RetryWithBackoff,
	}
}

// FetchRecord retrieves the record with the given genealogy id.
//
// If refresh is true the cache is bypassed and a fresh page is fetched.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff before giving up.
//
// Returns:
//   - a populated *Record on success (never nil if err is nil)
//   - an error with code RECORD_NOT_FOUND if the id does not exist
//   - an error with code NETWORK_ERROR for HTTP failures
func (c *Client) FetchRecord(ctx context.Context, id int, refresh bool) (rec *Record, err error) {
	if verr := apperrors.ValidateGenealogyID(id); verr != nil {
		return nil, verr
	}

	hooks := observability.Fetch()
	hooks.OnFetchStart(ctx, id)
	start := time.Now()
	cached := false
	defer func() {
		hooks.OnFetchComplete(ctx, id, cached, time.Since(start), err)
	}()

	key := cache.RecordKey(id)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			var r Record
			if jerr := json.Unmarshal(data, &r); jerr == nil {
				cached = true
				return &r, nil
			}
			// Corrupt cache entries are dropped and refetched.
			_ = c.cache.Delete(ctx, key)
		}
	}

	err = c.retry(ctx, func() error {
		var ferr error
		rec, ferr = c.fetch(ctx, id)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(rec); merr == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return rec, nil
}

func (c *Client) fetch(ctx context.Context, id int) (*Record, error) {
	url := fmt.Sprintf("%s/id.php?id=%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetching record %d", id),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, id); err != nil {
		return nil, err
	}
	return ParseRecord(resp.Body, id)
}

func checkStatus(code, id int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return apperrors.New(apperrors.ErrCodeRecordNotFound, "no record with id %d", id)
	case code >= 500:
		return &httputil.RetryableError{
			Err: apperrors.New(apperrors.ErrCodeNetwork, "record %d: server returned status %d", id, code),
		}
	default:
		return apperrors.New(apperrors.ErrCodeNetwork, "record %d: unexpected status %d", id, code)
	}
}
