package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// RenderedFetcher drives a headless browser for pages that assemble their
// tariff tables in JavaScript. Each Fetch runs in its own browser context so
// one stuck page cannot wedge the allocator.
type RenderedFetcher struct {
	allocCtx     context.Context
	allocCancel  context.CancelFunc
	timeout      time.Duration
	scrollPasses int
}

// NewRenderedFetcher starts a headless Chrome allocator shared by all fetches.
// Call Close when done.
func NewRenderedFetcher(timeout time.Duration, scrollPasses int) *RenderedFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &RenderedFetcher{
		allocCtx:     allocCtx,
		allocCancel:  cancel,
		timeout:      timeout,
		scrollPasses: scrollPasses,
	}
}

func (f *RenderedFetcher) Name() string { return "rendered_browser" }

// Close shuts the shared allocator down.
func (f *RenderedFetcher) Close() {
	f.allocCancel()
}

// Fetch renders a URL, scrolling to trigger lazy sections and polling until
// currency text appears or the deadline passes.
func (f *RenderedFetcher) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.timeout)
	defer cancelTimeout()

	// Honor the caller's cancellation as well as the tab deadline.
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-tabCtx.Done():
		}
	}()

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return nil, eris.Wrapf(err, "rendered_browser: navigate %s", targetURL)
	}

	for i := 0; i < f.scrollPasses; i++ {
		if err := chromedp.Run(tabCtx,
			chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
			chromedp.Sleep(500*time.Millisecond),
		); err != nil {
			break
		}
	}

	html, err := f.waitForPriceText(tabCtx)
	if err != nil {
		return nil, eris.Wrapf(err, "rendered_browser: render %s", targetURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "rendered_browser: parse html")
	}
	return doc, nil
}

// waitForPriceText polls the page until a currency or unit token shows up in
// the rendered HTML. Returns the last snapshot either way, since some pages
// legitimately carry no prices.
func (f *RenderedFetcher) waitForPriceText(ctx context.Context) (string, error) {
	var html string
	for attempt := 0; attempt < 6; attempt++ {
		if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
			return "", err
		}
		if strings.Contains(html, "₺") || strings.Contains(html, "TL") || strings.Contains(html, "kWh") {
			return html, nil
		}
		if err := chromedp.Run(ctx, chromedp.Sleep(time.Second)); err != nil {
			return html, nil
		}
	}
	return html, nil
}
