// Package scraper extracts a company profile from a single web page.
//
// Each field is produced by an ordered chain of rules. A rule inspects the
// parsed page and either yields a value or reports a miss; the first rule
// that yields wins. Rules never perform I/O and never fail, so a malformed or
// sparse page degrades to missing fields rather than an error.
package scraper

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Page is a parsed document together with the URL it was served from.
type Page struct {
	Doc *goquery.Document
	URL *url.URL
}

// ParsePage parses body as HTML and pairs it with the page URL.
func ParsePage(body []byte, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse page url")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "scraper: parse html")
	}
	return &Page{Doc: doc, URL: u}, nil
}

// Rule derives a single field from a page. ok is false on a miss.
type Rule func(p *Page) (value string, ok bool)

// FirstMatch applies rules in order and returns the first value produced.
func FirstMatch(p *Page, rules ...Rule) (string, bool) {
	if p == nil || p.Doc == nil {
		return "", false
	}
	for _, rule := range rules {
		if v, ok := rule(p); ok {
			return v, true
		}
	}
	return "", false
}

// CleanText collapses runs of whitespace, line breaks included, to single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// nonEmpty trims s and reports whether anything is left.
func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
