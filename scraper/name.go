package scraper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NameRules derive the company name, most trusted source first.
var NameRules = []Rule{
	siteNameMeta,
	cleanedTitle,
	domainLabel,
}

// ExtractName returns the company name for the page.
func ExtractName(p *Page) (string, bool) {
	return FirstMatch(p, NameRules...)
}

// siteNameMeta reads <meta property="og:site_name">.
func siteNameMeta(p *Page) (string, bool) {
	content, _ := p.Doc.Find(`meta[property="og:site_name"]`).First().Attr("content")
	return nonEmpty(content)
}

var marketingSuffixRe = regexp.MustCompile(`(?i)\s*(Official Site|Home|Website).*$`)

// cleanedTitle reduces the <title> to its leading segment, minus marketing filler.
func cleanedTitle(p *Page) (string, bool) {
	title := p.Doc.Find("title").First()
	if title.Length() == 0 {
		return "", false
	}
	return CleanTitle(title.Text())
}

// CleanTitle collapses whitespace, keeps the part of a page title before the
// first "|" or "-" and drops a trailing "Official Site", "Home" or "Website"
// along with anything after it.
func CleanTitle(title string) (string, bool) {
	name := strings.Split(CleanText(title), "|")[0]
	name = strings.Split(name, "-")[0]
	name = strings.TrimSpace(name)
	name = marketingSuffixRe.ReplaceAllString(name, "")
	return nonEmpty(name)
}

// domainLabel capitalizes the second-level label of the host: www.acme.com -> Acme.
func domainLabel(p *Page) (string, bool) {
	if p.URL == nil {
		return "", false
	}
	return NameFromHost(p.URL.Hostname())
}

// NameFromHost derives a display name from a host name.
func NameFromHost(host string) (string, bool) {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return "", false
	}
	label := strings.ToLower(parts[len(parts)-2])
	if label == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + label[size:], true
}
