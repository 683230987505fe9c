package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	maxBodyBytes = 2 << 20
)

// StaticFetcher fetches HTML via net/http. Cheap and sufficient for pages
// that serve tariff tables without client-side rendering.
type StaticFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewStaticFetcher creates a StaticFetcher that spaces requests at most one
// per interval.
func NewStaticFetcher(timeout, interval time.Duration) *StaticFetcher {
	return &StaticFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (f *StaticFetcher) Name() string { return "static_http" }

// Fetch retrieves and parses a URL.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "static_http: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "static_http: create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.5")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "static_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("static_http: status %d for %s", resp.StatusCode, targetURL)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "static_http: parse html")
	}
	return doc, nil
}
