// Package fetcher retrieves the raw document for a company URL.
package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"companyintel/config"
)

// Page is a fetched document.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Fetcher retrieves a single URL. Any non-200 response is returned as a *StatusError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// StatusError reports a response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: received non-200 status code %d from %s", e.StatusCode, e.URL)
}

// NormalizeURL prepends https:// to URLs given without a scheme.
func NormalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}
	return urlStr
}

// New builds the fetcher selected by cfg.Mode.
func New(cfg config.FetchConfig) (Fetcher, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	switch cfg.Mode {
	case "", "http":
		return NewHTTPFetcher(HTTPOptions{
			UserAgent:    cfg.UserAgent,
			Timeout:      timeout,
			MaxBodyBytes: cfg.MaxBodyBytes,
			InsecureTLS:  cfg.InsecureTLS,
		}), nil
	case "browser":
		return NewBrowserFetcher(BrowserOptions{
			UserAgent:   cfg.UserAgent,
			Timeout:     timeout,
			InsecureTLS: cfg.InsecureTLS,
		}), nil
	default:
		return nil, eris.Errorf("fetch: unknown mode %q", cfg.Mode)
	}
}
