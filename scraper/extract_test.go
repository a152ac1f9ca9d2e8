package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(t *testing.T, html, pageURL string) *Page {
	t.Helper()
	p, err := ParsePage([]byte(html), pageURL)
	require.NoError(t, err)
	return p
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		url     string
		want    string
		wantHit bool
	}{
		{
			name:    "site name meta wins",
			html:    `<head><meta property="og:site_name" content=" Acme "><title>Other | Thing</title></head>`,
			url:     "https://acme.com",
			want:    "Acme",
			wantHit: true,
		},
		{
			name:    "empty site name falls through to title",
			html:    `<head><meta property="og:site_name" content="  "><title>Globex - Home</title></head>`,
			url:     "https://globex.com",
			want:    "Globex",
			wantHit: true,
		},
		{
			name:    "title pipe and marketing suffix",
			html:    `<title>Acme Corp | Official Site</title>`,
			url:     "https://acme.com",
			want:    "Acme Corp",
			wantHit: true,
		},
		{
			name:    "title marketing suffix without separator",
			html:    `<title>Initech Official Site</title>`,
			url:     "https://initech.com",
			want:    "Initech",
			wantHit: true,
		},
		{
			name:    "empty cleaned title falls through to domain",
			html:    `<title>Home | Welcome</title>`,
			url:     "https://www.umbrella-corp.com/about",
			want:    "Umbrella-corp",
			wantHit: true,
		},
		{
			name:    "domain label",
			html:    `<body><p>hi</p></body>`,
			url:     "https://www.HOOLI.io/",
			want:    "Hooli",
			wantHit: true,
		},
		{
			name:    "single label host is a miss",
			html:    `<body></body>`,
			url:     "http://localhost:8080/",
			wantHit: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractName(page(t, tt.html, tt.url))
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanTitle(t *testing.T) {
	got, ok := CleanTitle("Acme Corp | Official Site")
	assert.True(t, ok)
	assert.Equal(t, "Acme Corp", got)

	got, ok = CleanTitle("  Contoso - Cloud solutions | Contoso  ")
	assert.True(t, ok)
	assert.Equal(t, "Contoso", got)

	got, ok = CleanTitle("\n    Acme\n\t  Corp\n    | Rockets")
	assert.True(t, ok)
	assert.Equal(t, "Acme Corp", got)

	_, ok = CleanTitle(" | ")
	assert.False(t, ok)
}

func TestNameFromHost(t *testing.T) {
	got, ok := NameFromHost("www.example.co")
	assert.True(t, ok)
	assert.Equal(t, "Example", got)

	got, ok = NameFromHost("ÉCOLE.fr")
	assert.True(t, ok)
	assert.Equal(t, "École", got)

	_, ok = NameFromHost("localhost")
	assert.False(t, ok)
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantHit bool
	}{
		{
			name:    "description meta",
			html:    `<head><meta name="description" content="We make widgets."></head><body><p>Other</p></body>`,
			want:    "We make widgets.",
			wantHit: true,
		},
		{
			name:    "og description in name attribute",
			html:    `<head><meta name="og:description" content="Open graph text"></head>`,
			want:    "Open graph text",
			wantHit: true,
		},
		{
			name:    "first qualifying meta in document order",
			html:    `<head><meta name="og:description" content="first"><meta name="description" content="second"></head>`,
			want:    "first",
			wantHit: true,
		},
		{
			name:    "empty meta content is skipped",
			html:    `<head><meta name="description" content="   "><meta name="og:description" content="filled"></head>`,
			want:    "filled",
			wantHit: true,
		},
		{
			name:    "property attribute is not a name",
			html:    `<head><meta property="og:description" content="ignored"></head><body><p>  First paragraph.  </p></body>`,
			want:    "First paragraph.",
			wantHit: true,
		},
		{
			name:    "empty first paragraph is a miss",
			html:    `<body><p>   </p><p>second</p></body>`,
			wantHit: false,
		},
		{
			name:    "nothing",
			html:    `<body><div>text</div></body>`,
			wantHit: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDescription(page(t, tt.html, "https://acme.com"))
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractLogo(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		url     string
		want    string
		wantHit bool
	}{
		{
			name:    "relative icon",
			html:    `<head><link rel="icon" href="/fav.png"></head>`,
			url:     "https://acme.com/about",
			want:    "https://acme.com/fav.png",
			wantHit: true,
		},
		{
			name:    "shortcut icon matches the icon token",
			html:    `<head><link rel="shortcut icon" href="favicon.ico"></head>`,
			url:     "https://acme.com/en/",
			want:    "https://acme.com/en/favicon.ico",
			wantHit: true,
		},
		{
			name:    "icon precedes og image",
			html:    `<head><meta property="og:image" content="https://cdn.acme.com/og.png"><link rel="icon" href="/i.png"></head>`,
			url:     "https://acme.com",
			want:    "https://acme.com/i.png",
			wantHit: true,
		},
		{
			name:    "og image content",
			html:    `<head><meta property="og:image" content="https://cdn.acme.com/og.png"></head>`,
			url:     "https://acme.com",
			want:    "https://cdn.acme.com/og.png",
			wantHit: true,
		},
		{
			name:    "brand image class",
			html:    `<body><img class="hero" src="/hero.jpg"><img class="Site-Brand" src="img/brand.svg"></body>`,
			url:     "https://acme.com/",
			want:    "https://acme.com/img/brand.svg",
			wantHit: true,
		},
		{
			name:    "protocol relative",
			html:    `<body><img class="logo" src="//static.acme.com/logo.png"></body>`,
			url:     "https://acme.com/",
			want:    "https://static.acme.com/logo.png",
			wantHit: true,
		},
		{
			name:    "icon without href is a miss for that rule",
			html:    `<head><link rel="icon"></head><body><img class="logo" src="/l.png"></body>`,
			url:     "https://acme.com/",
			want:    "https://acme.com/l.png",
			wantHit: true,
		},
		{
			name:    "nothing",
			html:    `<body><img src="/x.png"></body>`,
			url:     "https://acme.com/",
			wantHit: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractLogo(page(t, tt.html, tt.url))
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstMatch(t *testing.T) {
	miss := func(*Page) (string, bool) { return "", false }
	hit := func(v string) Rule {
		return func(*Page) (string, bool) { return v, true }
	}
	p := page(t, `<html></html>`, "https://acme.com")

	got, ok := FirstMatch(p, miss, hit("a"), hit("b"))
	assert.True(t, ok)
	assert.Equal(t, "a", got)

	_, ok = FirstMatch(p, miss)
	assert.False(t, ok)

	_, ok = FirstMatch(nil, hit("a"))
	assert.False(t, ok)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a \n\t b   c "))
}
