package guide

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"scribe/pkg/logging"
)

// failureRetryTTL bounds how long a failed refresh is remembered before
// the next attempt. It never exceeds the configured cache TTL.
const failureRetryTTL = 5 * time.Minute

// CrawlRunner produces a fresh snapshot of the help site.
type CrawlRunner interface {
	Crawl(ctx context.Context) ([]Page, error)
}

// Status describes the cache for the status endpoint.
type Status struct {
	Enabled     bool      `json:"enabled"`
	CachedPages int       `json:"cached_pages"`
	FetchedAt   time.Time `json:"fetched_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	LastError   string    `json:"last_error,omitempty"`
	RootURL     string    `json:"root_url,omitempty"`
}

// CacheConfig configures a Cache.
type CacheConfig struct {
	Runner  CrawlRunner
	Enabled bool
	TTL     time.Duration
	RootURL string
	Logger  logging.Logger
}

// Cache holds the most recent crawl snapshot with a TTL. Expired
// entries trigger a refresh; when the refresh fails, the previous
// snapshot keeps being served and the failure is remembered for a
// short retry window instead of the full TTL. Concurrent callers of an
// expired cache share a single crawl.
type Cache struct {
	runner  CrawlRunner
	enabled bool
	ttl     time.Duration
	rootURL string
	logger  logging.Logger

	now   func() time.Time
	group singleflight.Group

	mu        sync.Mutex
	pages     []Page
	fetchedAt time.Time
	expiresAt time.Time
	lastErr   string
}

// NewCache builds a cache around the given crawl runner. A disabled
// cache serves no pages and never crawls.
func NewCache(cfg CacheConfig) *Cache {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Cache{
		runner:  cfg.Runner,
		enabled: cfg.Enabled && cfg.Runner != nil,
		ttl:     cfg.TTL,
		rootURL: cfg.RootURL,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the cached pages, refreshing first when the entry has
// expired. The second return value reports whether the snapshot is
// stale, meaning the most recent refresh attempt failed and an older
// snapshot is being served.
func (c *Cache) Get(ctx context.Context) ([]Page, bool) {
	if c == nil || !c.enabled {
		return nil, false
	}
	c.RefreshIfExpired(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages, c.lastErr != ""
}

// RefreshIfExpired crawls and replaces the snapshot when the current
// entry has passed its expiry. Concurrent callers piggyback on one
// in-flight crawl.
func (c *Cache) RefreshIfExpired(ctx context.Context) {
	if c == nil || !c.enabled {
		return
	}

	c.mu.Lock()
	fresh := !c.expiresAt.IsZero() && c.now().Before(c.expiresAt)
	c.mu.Unlock()
	if fresh {
		return
	}

	c.group.Do("refresh", func() (interface{}, error) {
		c.refresh(ctx)
		return nil, nil
	})
}

func (c *Cache) refresh(ctx context.Context) {
	pages, err := c.runner.Crawl(ctx)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetchedAt = now
	if err != nil {
		retry := failureRetryTTL
		if c.ttl < retry {
			retry = c.ttl
		}
		c.expiresAt = now.Add(retry)
		c.lastErr = err.Error()
		cacheRefreshTotal.WithLabelValues("failure").Inc()
		c.logger.WithFields(logging.Fields{
			"root":         c.rootURL,
			"error":        err.Error(),
			"cached_pages": len(c.pages),
			"retry_after":  retry.String(),
		}).Warn("Guide cache refresh failed, serving previous snapshot")
		return
	}

	c.pages = pages
	c.expiresAt = now.Add(c.ttl)
	c.lastErr = ""
	cacheRefreshTotal.WithLabelValues("success").Inc()
	c.logger.WithFields(logging.Fields{
		"root":  c.rootURL,
		"pages": len(pages),
		"ttl":   c.ttl.String(),
	}).Info("Guide cache refreshed")
}

// Status reports the cache state without triggering a refresh.
func (c *Cache) Status() Status {
	if c == nil {
		return Status{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Enabled:     c.enabled,
		CachedPages: len(c.pages),
		FetchedAt:   c.fetchedAt,
		ExpiresAt:   c.expiresAt,
		LastError:   c.lastErr,
		RootURL:     c.rootURL,
	}
}
