package guide

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"scribe/pkg/logging"
)

const (
	defaultMaxPages     = 24
	defaultFetchTimeout = 12 * time.Second
	defaultUserAgent    = "scribe-guide-crawler/1.0"

	maxLinksPerPage = 60
	minPageText     = 80
	maxPageText     = 12000
	maxPageBytes    = 10 << 20
	maxRedirects    = 10
)

// Page is one crawled help article reduced to plain text.
type Page struct {
	URL   string
	Title string
	Text  string
}

// Crawler walks a help site breadth-first from a root URL, staying
// within the root's host and directory, and extracts plain text from
// each HTML page it visits.
type Crawler struct {
	client       *http.Client
	root         *url.URL
	scope        Scope
	userAgent    string
	maxPages     int
	fetchTimeout time.Duration
	logger       logging.Logger
}

// CrawlerOption customizes a Crawler.
type CrawlerOption func(*Crawler)

// WithLogger sets the crawler's logger.
func WithLogger(logger logging.Logger) CrawlerOption {
	return func(c *Crawler) { c.logger = logger }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) CrawlerOption {
	return func(c *Crawler) { c.client = client }
}

// WithMaxPages caps how many pages a single crawl may collect.
func WithMaxPages(n int) CrawlerOption {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithFetchTimeout sets the per-page fetch timeout.
func WithFetchTimeout(d time.Duration) CrawlerOption {
	return func(c *Crawler) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with each fetch.
func WithUserAgent(ua string) CrawlerOption {
	return func(c *Crawler) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewCrawler builds a crawler rooted at rootURL. The crawl scope is
// derived from the root: same host, paths under the root's directory.
func NewCrawler(rootURL string, opts ...CrawlerOption) (*Crawler, error) {
	root, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("invalid root URL %q: %w", rootURL, err)
	}
	if root.Scheme != "http" && root.Scheme != "https" {
		return nil, fmt.Errorf("root URL %q must use http or https", rootURL)
	}
	if root.Host == "" {
		return nil, fmt.Errorf("root URL %q has no host", rootURL)
	}

	c := &Crawler{
		root:         root,
		scope:        NewScope(root),
		userAgent:    defaultUserAgent,
		maxPages:     defaultMaxPages,
		fetchTimeout: defaultFetchTimeout,
		logger:       logging.NewLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		}
	}
	return c, nil
}

// Crawl walks the site breadth-first starting from the root and returns
// the collected pages in visit order. Individual fetch failures are
// logged and skipped; Crawl returns an error only when no page could be
// collected and at least one fetch failed.
func (c *Crawler) Crawl(ctx context.Context) ([]Page, error) {
	start := time.Now()
	defer func() { crawlDuration.Observe(time.Since(start).Seconds()) }()

	rootLink := c.root.String()
	queue := []string{rootLink}
	seen := map[string]bool{rootLink: true}

	var pages []Page
	var firstErr error

	for len(queue) > 0 && len(pages) < c.maxPages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		current := queue[0]
		queue = queue[1:]

		body, err := c.fetch(ctx, current)
		if err != nil {
			crawlPagesTotal.WithLabelValues("failed").Inc()
			c.logger.WithFields(logging.Fields{
				"url":   current,
				"error": err.Error(),
			}).Warn("Guide page fetch failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		text := StripHTML(body)
		if utf8.RuneCountInString(text) > minPageText {
			pages = append(pages, Page{
				URL:   current,
				Title: ExtractTitle(body, current),
				Text:  truncateRunes(text, maxPageText),
			})
			crawlPagesTotal.WithLabelValues("collected").Inc()
		} else {
			crawlPagesTotal.WithLabelValues("skipped").Inc()
		}

		base, err := url.Parse(current)
		if err != nil {
			continue
		}
		enqueued := 0
		for _, link := range ExtractLinks(body, base) {
			if enqueued >= maxLinksPerPage {
				break
			}
			if seen[link] {
				continue
			}
			target, err := url.Parse(link)
			if err != nil || !c.scope.Allows(target) {
				continue
			}
			seen[link] = true
			queue = append(queue, link)
			enqueued++
		}
	}

	if len(pages) == 0 && firstErr != nil {
		return nil, fmt.Errorf("crawl %s: %w", rootLink, firstErr)
	}

	c.logger.WithFields(logging.Fields{
		"root":     rootLink,
		"pages":    len(pages),
		"duration": time.Since(start).String(),
	}).Info("Guide crawl finished")
	return pages, nil
}

func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !isHTMLContent(ct) {
		return "", fmt.Errorf("unsupported content type %q for %s", ct, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func isHTMLContent(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
