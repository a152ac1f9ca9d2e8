package fetcher

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"companyintel/config"
)

// BrowserOptions configures the headless browser fetcher.
type BrowserOptions struct {
	UserAgent   string
	Timeout     time.Duration
	InsecureTLS bool
	// Settle is how long to wait after navigation for scripts to render.
	Settle time.Duration
}

// BrowserFetcher renders pages in headless Chrome. Each call starts its own
// browser and tears it down before returning.
type BrowserFetcher struct {
	opts BrowserOptions
}

// NewBrowserFetcher creates a BrowserFetcher, filling unset options with defaults.
func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.Settle == 0 {
		opts.Settle = time.Second
	}
	return &BrowserFetcher{opts: opts}
}

func (f *BrowserFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("ignore-certificate-errors", f.opts.InsecureTLS),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(f.opts.UserAgent),
	)
}

// Fetch navigates to url and returns the rendered document.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))
	defer browserCancel()

	chromedp.ListenTarget(browserCtx, func(ev any) {
		switch ev.(type) {
		case *page.EventJavascriptDialogOpening:
			go func() { _ = chromedp.Run(browserCtx, page.HandleJavaScriptDialog(false)) }()
		}
	})

	timeoutCtx, cancel := context.WithTimeout(browserCtx, f.opts.Timeout)
	defer cancel()

	resp, err := chromedp.RunResponse(timeoutCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: browser navigate")
	}
	if resp == nil {
		return nil, eris.Errorf("fetch: browser got no response for %s", url)
	}
	if resp.Status != 200 {
		return nil, &StatusError{URL: url, StatusCode: int(resp.Status)}
	}

	var html string
	if err := chromedp.Run(timeoutCtx,
		chromedp.Sleep(f.opts.Settle),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	); err != nil {
		return nil, eris.Wrap(err, "fetch: browser read document")
	}

	return &Page{
		URL:         resp.URL,
		StatusCode:  int(resp.Status),
		ContentType: resp.MimeType,
		Body:        []byte(html),
	}, nil
}
