package ticker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"companyintel/config"
)

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string   `json:"currency"`
				Symbol             string   `json:"symbol"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			Price struct {
				MarketCap struct {
					Raw *int64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooOptions configures the Yahoo Finance client.
type YahooOptions struct {
	BaseURL   string
	CookieURL string // visited once to obtain session cookies; empty skips it
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// YahooClient queries Yahoo Finance's chart and quoteSummary endpoints. The
// price comes from the chart endpoint; market cap and industry come from
// quoteSummary when a session crumb can be obtained, and are left empty otherwise.
type YahooClient struct {
	client *http.Client
	opts   YahooOptions
	crumb  string
	tried  bool
}

// NewYahooClient creates a client with its own cookie jar.
func NewYahooClient(opts YahooOptions) *YahooClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://query1.finance.yahoo.com"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		opts.Logger.Warn("yahoo: cookie jar unavailable", zap.Error(err))
	}

	return &YahooClient{
		client: &http.Client{Jar: jar, Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Lookup returns the quote for symbol.
func (c *YahooClient) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.opts.BaseURL, url.PathEscape(symbol))

	var chart yahooChartResponse
	if err := c.getJSON(ctx, chartURL, &chart); err != nil {
		return nil, eris.Wrapf(err, "yahoo: chart %s", symbol)
	}
	if chart.Chart.Error != nil {
		return nil, eris.Errorf("yahoo: chart %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, eris.Errorf("yahoo: no chart data for %s", symbol)
	}

	meta := chart.Chart.Result[0].Meta
	q := &Quote{
		Symbol:             meta.Symbol,
		RegularMarketPrice: meta.RegularMarketPrice,
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if q.Priced() {
		c.addProfile(ctx, q)
	}
	return q, nil
}

// addProfile fills market cap and industry from quoteSummary.
func (c *YahooClient) addProfile(ctx context.Context, q *Quote) {
	crumb := c.sessionCrumb(ctx)
	params := url.Values{}
	params.Set("modules", "assetProfile,price")
	if crumb != "" {
		params.Set("crumb", crumb)
	}
	summaryURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.opts.BaseURL, url.PathEscape(q.Symbol), params.Encode())

	var summary yahooQuoteSummaryResponse
	if err := c.getJSON(ctx, summaryURL, &summary); err != nil {
		c.opts.Logger.Debug("yahoo: quote summary unavailable", zap.String("symbol", q.Symbol), zap.Error(err))
		return
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return
	}
	result := summary.QuoteSummary.Result[0]
	q.MarketCap = result.Price.MarketCap.Raw
	q.Industry = result.AssetProfile.Industry
}

// sessionCrumb obtains the crumb once per client.
func (c *YahooClient) sessionCrumb(ctx context.Context) string {
	if c.tried {
		return c.crumb
	}
	c.tried = true

	if c.opts.CookieURL != "" {
		if req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.CookieURL, nil); err == nil {
			req.Header.Set("User-Agent", c.opts.UserAgent)
			if resp, err := c.client.Do(req); err == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
			}
		}
	}

	body, err := c.get(ctx, c.opts.BaseURL+"/v1/test/getcrumb")
	if err != nil {
		c.opts.Logger.Debug("yahoo: crumb unavailable", zap.Error(err))
		return ""
	}
	crumb := strings.TrimSpace(string(body))
	if strings.Contains(crumb, "<") {
		return ""
	}
	c.crumb = crumb
	return c.crumb
}

func (c *YahooClient) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}

func (c *YahooClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, eris.Wrap(err, "read body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("status %d", resp.StatusCode)
	}
	return body, nil
}

// Close releases idle connections held by the client.
func (c *YahooClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
