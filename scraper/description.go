package scraper

import (
	"github.com/PuerkitoBio/goquery"
)

// DescriptionRules derive a short company description.
var DescriptionRules = []Rule{
	descriptionMeta,
	firstParagraph,
}

// ExtractDescription returns the company description for the page.
func ExtractDescription(p *Page) (string, bool) {
	return FirstMatch(p, DescriptionRules...)
}

// descriptionMeta scans meta tags in document order for a non-empty
// name="description" or name="og:description".
func descriptionMeta(p *Page) (string, bool) {
	var found string
	p.Doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if name != "description" && name != "og:description" {
			return true
		}
		content, ok := nonEmpty(s.AttrOr("content", ""))
		if !ok {
			return true
		}
		found = content
		return false
	})
	return found, found != ""
}

// firstParagraph returns the text of the first <p>.
func firstParagraph(p *Page) (string, bool) {
	para := p.Doc.Find("p").First()
	if para.Length() == 0 {
		return "", false
	}
	return nonEmpty(para.Text())
}
