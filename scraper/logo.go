package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LogoRules locate the company logo. Each rule looks at the first element
// matching its selector only.
var LogoRules = []Rule{
	logoFrom(`link[rel~="icon"]`),
	logoFrom(`link[rel="shortcut icon"]`),
	logoFrom(`meta[property="og:image"]`),
	brandImage,
}

// ExtractLogo returns the absolute URL of the company logo.
func ExtractLogo(p *Page) (string, bool) {
	return FirstMatch(p, LogoRules...)
}

func logoFrom(selector string) Rule {
	return func(p *Page) (string, bool) {
		return resolveCandidate(p, p.Doc.Find(selector).First())
	}
}

// brandImage matches an <img> whose class mentions "logo" or "brand".
func brandImage(p *Page) (string, bool) {
	img := p.Doc.Find("img[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class := strings.ToLower(s.AttrOr("class", ""))
		return strings.Contains(class, "logo") || strings.Contains(class, "brand")
	}).First()
	return resolveCandidate(p, img)
}

// resolveCandidate takes href, content or src from s, in that order, and
// resolves it against the page URL.
func resolveCandidate(p *Page, s *goquery.Selection) (string, bool) {
	if s.Length() == 0 {
		return "", false
	}
	var candidate string
	for _, attr := range []string{"href", "content", "src"} {
		if v, ok := nonEmpty(s.AttrOr(attr, "")); ok {
			candidate = v
			break
		}
	}
	if candidate == "" {
		return "", false
	}
	return ResolveURL(p.URL, candidate)
}

// ResolveURL resolves ref against base. A nil base leaves ref unchanged.
func ResolveURL(base *url.URL, ref string) (string, bool) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if base == nil {
		return refURL.String(), true
	}
	return base.ResolveReference(refURL).String(), true
}
