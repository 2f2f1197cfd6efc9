// Package fetch retrieves listing-page markup from the source site.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// Fetcher downloads listing pages through a colly collector scoped to the
// source host. Safe for sequential reuse; a Fetcher serves one page at a
// time.
type Fetcher struct {
	collector *colly.Collector
	metrics   *Metrics

	mu   sync.Mutex
	body []byte
	err  error
}

// New creates a Fetcher restricted to sourceURL's host. metrics may be nil.
func New(sourceURL, userAgent string, timeout time.Duration, metrics *Metrics) (*Fetcher, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("source url must include a host")
	}

	c := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(userAgent),
		// The same page is fetched on every sync of a long-lived process.
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	f := &Fetcher{collector: c, metrics: metrics}

	c.OnResponse(func(r *colly.Response) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.err = err
	})

	return f, nil
}

// WithTransport swaps the underlying HTTP transport. Used by tests to serve
// canned responses.
func (f *Fetcher) WithTransport(rt http.RoundTripper) {
	f.collector.WithTransport(rt)
}

// FetchPage downloads pageURL and returns its markup. The context is checked
// before the request starts; an in-flight request is bounded by the
// collector's request timeout.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.body = nil
	f.err = nil
	f.mu.Unlock()

	f.metrics.IncRequest("started")
	start := time.Now()

	visitErr := f.collector.Visit(pageURL)
	f.collector.Wait()

	f.metrics.ObserveDuration(time.Since(start).Seconds())

	f.mu.Lock()
	body, fetchErr := f.body, f.err
	f.mu.Unlock()

	if visitErr != nil {
		fetchErr = visitErr
	}
	if fetchErr != nil {
		f.metrics.IncRequest("error")
		return "", fmt.Errorf("fetch %s: %w", pageURL, fetchErr)
	}
	if len(body) == 0 {
		f.metrics.IncRequest("error")
		return "", fmt.Errorf("fetch %s: empty response body", pageURL)
	}

	f.metrics.IncRequest("ok")
	return string(body), nil
}
