package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html/charset"

	"companyintel/config"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	InsecureTLS  bool
}

// HTTPFetcher fetches pages with net/http. Every call gets its own client so
// no connection outlives the request that opened it.
type HTTPFetcher struct {
	opts HTTPOptions
}

// NewHTTPFetcher creates an HTTPFetcher, filling unset options with defaults.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = config.DefaultUserAgent
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = 5 * 1024 * 1024
	}
	return &HTTPFetcher{opts: opts}
}

func (f *HTTPFetcher) newClient() *http.Client {
	return &http.Client{
		Timeout: f.opts.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: f.opts.InsecureTLS}, //nolint:gosec // opt-in via fetch.insecure_tls
		},
	}
}

// Fetch retrieves url and returns its body decoded to UTF-8.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: create request")
	}

	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")

	client := f.newClient()
	defer client.CloseIdleConnections()

	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	raw, err := io.ReadAll(io.LimitReader(reader, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetch: read body")
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := toUTF8(raw, contentType)
	if err != nil {
		return nil, err
	}

	return &Page{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// decodeBody unwraps the response according to its Content-Encoding.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "fetch: create gzip reader")
		}
		return reader, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "zstd":
		decoder, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "fetch: create zstd reader")
		}
		return decoder.IOReadCloser(), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}

// toUTF8 converts body to UTF-8 using the declared or sniffed charset.
// Binary media types are returned unchanged.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	sniffed := contentType
	if sniffed == "" {
		sniffed = http.DetectContentType(body)
	}
	if !isText(sniffed) {
		return body, nil
	}
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: detect charset")
	}
	converted, err := io.ReadAll(reader)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: convert charset")
	}
	return converted, nil
}

func isText(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return strings.HasPrefix(mediaType, "text/") ||
		strings.HasSuffix(mediaType, "xml") ||
		strings.HasSuffix(mediaType, "json")
}
