// internal/adapters/marketplace/client.go
package marketplace

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"catalog_sync/internal/adapters/observability"
	"catalog_sync/internal/domain"
)

const service = "marketplace"

type Options struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	UserAgent      string
	AcceptLanguage string
}

// Client fetches product detail pages and scrapes price, image and title.
type Client struct {
	base           string
	hc             *http.Client
	rl             *rate.Limiter
	userAgent      string
	acceptLanguage string
	now            func() time.Time
}

func New(o Options) (*Client, error) {
	if o.BaseURL == "" {
		return nil, fmt.Errorf("marketplace base URL is required")
	}
	if o.RequestsPerSec <= 0 {
		o.RequestsPerSec = 1
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	return &Client{
		base:           strings.TrimRight(o.BaseURL, "/"),
		hc:             &http.Client{Timeout: o.Timeout},
		rl:             rate.NewLimiter(rate.Limit(o.RequestsPerSec), 1),
		userAgent:      o.UserAgent,
		acceptLanguage: o.AcceptLanguage,
		now:            func() time.Time { return time.Now().UTC() },
	}, nil
}

// ProductURL is the detail page address recorded with every entry.
func (c *Client) ProductURL(asin string) string {
	return c.base + "/dp/" + asin
}

// Fetch downloads and scrapes one product page. A page without any image is
// reported as domain.ErrNoImage; a missing price is not an error.
func (c *Client) Fetch(ctx context.Context, asin string) (domain.CacheEntry, error) {
	url := c.ProductURL(asin)
	start := time.Now()

	body, status, err := c.get(ctx, url)
	if err != nil {
		observability.ObserveExternal(service, status, time.Since(start))
		return domain.CacheEntry{}, fmt.Errorf("fetch %s: %w", asin, err)
	}
	defer body.Close()
	observability.ObserveExternal(service, status, time.Since(start))

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return domain.CacheEntry{}, fmt.Errorf("parse %s: %w", asin, err)
	}
	entry, err := scrape(doc)
	if err != nil {
		return domain.CacheEntry{}, fmt.Errorf("scrape %s: %w", asin, err)
	}
	entry.ASIN = asin
	entry.URL = url
	entry.FetchedAt = c.now().Format(domain.TimestampLayout)
	entry.StatusCode = status
	return entry, nil
}

// scrape reads the first usable price label, the hi-res product image (or
// its fallbacks) and the title.
func scrape(doc *goquery.Document) (domain.CacheEntry, error) {
	var e domain.CacheEntry

	doc.Find("span.a-offscreen").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if p, ok := domain.SanitizePrice(strings.TrimSpace(s.Text())); ok {
			e.Price = p
			return false
		}
		return true
	})

	img := doc.Find("#landingImage").First()
	if v, _ := img.Attr("data-old-hires"); v != "" {
		e.Image = v
	} else if v, _ := img.Attr("src"); v != "" {
		e.Image = v
	} else if v, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content"); v != "" {
		e.Image = v
	}
	if e.Image == "" {
		return domain.CacheEntry{}, domain.ErrNoImage
	}

	e.Title = strings.TrimSpace(doc.Find("#productTitle").First().Text())
	return e, nil
}

// get performs one rate-limited GET and returns the open body of a 200
// response. Any other status is reported as domain.ErrBadStatus.
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.acceptLanguage != "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, resp.StatusCode, fmt.Errorf("%w: %d", domain.ErrBadStatus, resp.StatusCode)
	}
	return resp.Body, resp.StatusCode, nil
}
